package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"heatcurve_backend/internal/config"
	"heatcurve_backend/internal/controller"
	"heatcurve_backend/internal/repository"
	"heatcurve_backend/internal/service"
	"heatcurve_backend/pkg/cache"
	"heatcurve_backend/pkg/configwatcher"
	"heatcurve_backend/pkg/database"
	"heatcurve_backend/pkg/logger"
	"heatcurve_backend/pkg/monitoring"
	"heatcurve_backend/pkg/security"
	"heatcurve_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	Config *config.Config
	Router *gin.Engine

	status   *service.StatusService
	tracerFn func(context.Context) error
}

type repositories struct {
	student    *repository.StudentRepository
	submission *repository.SubmissionRepository
}

type services struct {
	status     *service.StatusService
	auth       *service.AuthService
	submission *service.SubmissionService
	dashboard  *service.DashboardService
	export     *service.ExportService
}

type controllers struct {
	auth       *controller.AuthController
	submission *controller.SubmissionController
	dashboard  *controller.DashboardController
	export     *controller.ExportController
	health     *controller.HealthController
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)

	logger.Log.Info("Logger initialized successfully")

	// Redis 缺席时退化为进程内缓存，语义不变
	var readCache cache.Cache
	if cfg.Redis.Host != "" {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, falling back to in-process cache", zap.Error(err))
			readCache = cache.NewMemoryCache()
		} else {
			readCache = cache.NewRedisCache(rdb)
		}
	} else {
		readCache = cache.NewMemoryCache()
	}

	// 启动时评估一次数据库状态；失败不退出，系统以 OFFLINE 运行
	handle := database.NewHandle(nil)
	status := service.NewStatusService(cfg, handle, readCache)
	monitoring.Init()
	startup := status.Init()
	logger.Log.Info("DB 状态: " + startup.String())

	repos := &repositories{
		student:    repository.NewStudentRepository(handle),
		submission: repository.NewSubmissionRepository(handle),
	}

	svcs := &services{
		status:     status,
		auth:       service.NewAuthService(cfg),
		submission: service.NewSubmissionService(repos.student, repos.submission, status, readCache, cfg.Activity.ID),
		dashboard:  service.NewDashboardService(repos.submission, status, readCache, cfg.Activity.ID, cfg.Activity.CacheTTL),
		export:     service.NewExportService(cfg.Activity.ID),
	}

	ctrls := &controllers{
		auth:       controller.NewAuthController(svcs.auth),
		submission: controller.NewSubmissionController(svcs.submission),
		dashboard:  controller.NewDashboardController(svcs.dashboard),
		export:     controller.NewExportController(svcs.dashboard, svcs.export),
		health:     controller.NewHealthController(status),
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	app := &App{
		Config: cfg,
		Router: router,
		status: status,
	}

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("heatcurve-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			router.Use(tracing.GinMiddleware())
			app.tracerFn = tp.Shutdown
		}
	}

	app.registerRoutes(router, ctrls, cfg)

	// 凭据轮换后无需重启：热加载新连接参数，下一次手动刷新生效
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		status.UpdateDatabaseConfig(newCfg.Database)
	})

	return app
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.tracerFn != nil {
		if err := a.tracerFn(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
