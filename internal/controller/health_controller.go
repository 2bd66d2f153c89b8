package controller

import (
	"heatcurve_backend/internal/service"
	"heatcurve_backend/internal/util"
	"heatcurve_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthController struct {
	StatusService *service.StatusService
}

func NewHealthController(statusService *service.StatusService) *HealthController {
	return &HealthController{StatusService: statusService}
}

// @Summary 健康检查
// @Description 进程存活检查；OFFLINE 也返回 200，数据库状态单独给出
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	status := c.StatusService.Current()

	dbState := "up"
	if !status.Online {
		dbState = "down"
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": dbState,
		},
	})
}

// @Summary 数据库状态
// @Description 启动时计算一次的 ONLINE / OFFLINE 状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /status [get]
func (c *HealthController) Status(ctx *gin.Context) {
	status := c.StatusService.Current()
	util.Success(ctx, gin.H{
		"online": status.Online,
		"status": status.String(),
	})
}

// @Summary 手动刷新
// @Description 同步重新探测数据库并失效读缓存；返回后下一次读取即为新状态
// @Tags 系统
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /refresh [post]
func (c *HealthController) Refresh(ctx *gin.Context) {
	if claims := util.GetClaimsFromContext(ctx); claims != nil {
		logger.Log.Info("manual refresh requested", zap.String("role", claims.Role))
	}

	status := c.StatusService.Refresh(ctx.Request.Context())
	util.Success(ctx, gin.H{
		"online": status.Online,
		"status": status.String(),
	})
}
