package service

import (
	"context"
	"testing"
	"time"

	"heatcurve_backend/internal/config"
	"heatcurve_backend/pkg/cache"
	"heatcurve_backend/pkg/database"

	"gorm.io/gorm"
)

func TestInitWithoutConfigurationIsOffline(t *testing.T) {
	// 未配置凭据时不发起网络调用，状态为 OFFLINE: not configured
	cfg := &config.Config{}
	cfg.Activity.ID = testActivity

	svc := NewStatusService(cfg, database.NewHandle(nil), cache.NewMemoryCache())
	status := svc.Init()

	if status.Online {
		t.Fatal("expected OFFLINE without configuration")
	}
	if status.String() != "OFFLINE: not configured" {
		t.Fatalf("unexpected status %q", status.String())
	}
	if svc.Current() != status {
		t.Fatal("Current must return the startup status")
	}
}

func TestRefreshReEvaluatesAndInvalidatesCache(t *testing.T) {
	cfg := &config.Config{}
	cfg.Activity.ID = testActivity

	c := cache.NewMemoryCache()
	svc := NewStatusService(cfg, database.NewHandle(nil), c)

	attempts := 0
	svc.connect = func(*config.DatabaseConfig) (*gorm.DB, bool, string) {
		attempts++
		if attempts == 1 {
			return nil, false, "connection refused"
		}
		return &gorm.DB{}, true, ""
	}

	ctx := context.Background()
	if status := svc.Init(); status.Online {
		t.Fatal("first probe should fail")
	}

	c.Set(ctx, submissionsCacheKey(testActivity), "stale", time.Minute)

	status := svc.Refresh(ctx)
	if !status.Online {
		t.Fatalf("expected ONLINE after refresh, got %q", status.String())
	}
	if svc.Current().String() != "ONLINE" {
		t.Fatalf("unexpected status %q", svc.Current().String())
	}
	if _, ok := c.Get(ctx, submissionsCacheKey(testActivity)); ok {
		t.Fatal("refresh must invalidate cached reads before returning")
	}
}

func TestUpdateDatabaseConfigUsedOnNextRefresh(t *testing.T) {
	cfg := &config.Config{}
	cfg.Activity.ID = testActivity

	svc := NewStatusService(cfg, database.NewHandle(nil), cache.NewMemoryCache())

	var seenHost string
	svc.connect = func(dbCfg *config.DatabaseConfig) (*gorm.DB, bool, string) {
		seenHost = dbCfg.Host
		return nil, false, "still down"
	}

	svc.UpdateDatabaseConfig(config.DatabaseConfig{Host: "db.rotated.local"})
	svc.Refresh(context.Background())

	if seenHost != "db.rotated.local" {
		t.Fatalf("refresh must pick up reloaded credentials, saw %q", seenHost)
	}
}
