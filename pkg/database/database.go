package database

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"heatcurve_backend/internal/config"
	"heatcurve_backend/internal/model"
	"heatcurve_backend/pkg/logger"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// probeTimeout 连通性探测的固定超时，探测失败不会使进程退出
const probeTimeout = 5 * time.Second

// Probe 用一次短超时连接判断数据库是否可达，连上即关闭。
// 任何失败（网络、认证、超时）都折叠成返回值，不向外抛。
func Probe(cfg *config.DatabaseConfig) (bool, string) {
	db, err := sql.Open("mysql", cfg.DSN()+"&timeout=5s")
	if err != nil {
		return false, err.Error()
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// Connect 完成一次完整的启动连接流程：未配置 → 探测 → 建立 gorm 连接 → 迁移。
// 返回 (db, online, message)；db 仅在 online 时非 nil。
func Connect(cfg *config.DatabaseConfig) (*gorm.DB, bool, string) {
	if !cfg.Configured() {
		return nil, false, "not configured"
	}

	if ok, msg := Probe(cfg); !ok {
		return nil, false, msg
	}

	db, err := gorm.Open(gormmysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, false, err.Error()
	}

	// students 名册由外部流程建表维护，这里只迁移本系统拥有的 submissions
	if err := db.AutoMigrate(&model.Submission{}); err != nil {
		logger.Log.Error("submissions migration failed", zap.Error(err))
		return nil, false, err.Error()
	}

	logger.Log.Info("Database connection established",
		zap.String("host", cfg.Host), zap.String("dbname", cfg.DBName))
	return db, true, ""
}

// Handle 可替换的数据库句柄。启动时 OFFLINE、随后手动刷新成功的场景下，
// 仓库层持有的连接需要被原地换新。
type Handle struct {
	mu sync.RWMutex
	db *gorm.DB
}

func NewHandle(db *gorm.DB) *Handle {
	return &Handle{db: db}
}

func (h *Handle) DB() *gorm.DB {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.db
}

func (h *Handle) Set(db *gorm.DB) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.db = db
}
