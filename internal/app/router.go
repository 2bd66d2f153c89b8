package app

import (
	"heatcurve_backend/docs"
	"heatcurve_backend/internal/config"
	"heatcurve_backend/internal/middleware"
	"heatcurve_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由：学生提交与教师浏览都不需要登录（与课堂流程一致）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/status", c.health.Status)
		public.POST("/auth/teacher-login", c.auth.TeacherLogin)

		public.POST("/submissions", c.submission.Submit)
		public.GET("/submissions", c.dashboard.List)
		public.GET("/submissions/:studentId", c.dashboard.Detail)
		public.GET("/submissions/:studentId/export", c.export.ExportCSV)
		public.GET("/submissions/:studentId/export.xlsx", c.export.ExportXLSX)
	}

	// 教师专用：手动刷新会重连数据库并清缓存，必须持令牌
	teacher := router.Group("/api")
	teacher.Use(middleware.TeacherAuthMiddleware(cfg))
	{
		teacher.POST("/refresh", c.health.Refresh)
	}
}
