package service

import (
	"context"
	"sync"

	"heatcurve_backend/internal/config"
	"heatcurve_backend/pkg/cache"
	"heatcurve_backend/pkg/database"
	"heatcurve_backend/pkg/logger"
	"heatcurve_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SystemStatus 进程级的数据库可达性分类，启动时计算一次，
// 之后仅手动刷新会重新评估。所有数据库操作都以它为闸门。
type SystemStatus struct {
	Online  bool   `json:"online"`
	Message string `json:"message,omitempty"`
}

func (s SystemStatus) String() string {
	if s.Online {
		return "ONLINE"
	}
	return "OFFLINE: " + s.Message
}

type connectFunc func(*config.DatabaseConfig) (*gorm.DB, bool, string)

// StatusService 持有当前 SystemStatus 与可替换的数据库句柄。
// 手动刷新是唯一允许改变状态的入口：同步重连、同步失效缓存，
// 保证刷新返回后下一次读取看到的是新状态。
type StatusService struct {
	mu       sync.RWMutex
	dbCfg    config.DatabaseConfig
	activity string
	handle   *database.Handle
	cache    cache.Cache
	status   SystemStatus
	connect  connectFunc
}

func NewStatusService(cfg *config.Config, handle *database.Handle, c cache.Cache) *StatusService {
	return &StatusService{
		dbCfg:    cfg.Database,
		activity: cfg.Activity.ID,
		handle:   handle,
		cache:    c,
		connect:  database.Connect,
	}
}

// Init 启动时执行一次连接流程并固定状态
func (s *StatusService) Init() SystemStatus {
	return s.refresh(context.Background())
}

// Current 返回当前状态（不触发任何网络调用）
func (s *StatusService) Current() SystemStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Refresh 手动刷新：重新探测并失效该活动的读缓存。
// 没有任何自动重试路径会走到这里，只有用户动作会。
func (s *StatusService) Refresh(ctx context.Context) SystemStatus {
	return s.refresh(ctx)
}

// UpdateDatabaseConfig 配置热加载后替换连接参数；下一次手动刷新生效
func (s *StatusService) UpdateDatabaseConfig(dbCfg config.DatabaseConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dbCfg = dbCfg
}

func (s *StatusService) refresh(ctx context.Context) SystemStatus {
	s.mu.Lock()
	dbCfg := s.dbCfg
	connect := s.connect
	s.mu.Unlock()

	db, online, msg := connect(&dbCfg)

	s.mu.Lock()
	if online {
		s.status = SystemStatus{Online: true}
		s.handle.Set(db)
		monitoring.DatabaseOnline.Set(1)
	} else {
		s.status = SystemStatus{Online: false, Message: msg}
		monitoring.DatabaseOnline.Set(0)
	}
	status := s.status
	s.mu.Unlock()

	// 刷新必须先于下一次读取让旧缓存失效
	s.cache.Del(ctx, submissionsCacheKey(s.activity))

	logger.Log.Info("database status evaluated", zap.String("status", status.String()))
	return status
}
