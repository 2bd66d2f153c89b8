package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaultsAndConfiguredFlag(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: "9090"
database:
  host: db.school.local
  user: heat
  password: secret
  dbname: classroom
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Server.Port)
	}
	if cfg.Database.Port != 3306 {
		t.Fatalf("expected default port 3306, got %d", cfg.Database.Port)
	}
	if !cfg.Database.Configured() {
		t.Fatal("database with full credentials must report configured")
	}
	if cfg.Activity.ID != "2025-heat-curve-01" {
		t.Fatalf("expected default activity id, got %q", cfg.Activity.ID)
	}
	if cfg.Activity.CacheTTL.Seconds() != 5 {
		t.Fatalf("expected 5s cache ttl, got %v", cfg.Activity.CacheTTL)
	}

	dsn := cfg.Database.DSN()
	want := "heat:secret@tcp(db.school.local:3306)/classroom?charset=utf8mb4&parseTime=true&loc=Local"
	if dsn != want {
		t.Fatalf("dsn mismatch:\nwant %s\ngot  %s", want, dsn)
	}
}

func TestDatabaseConfiguredRequiresAllFields(t *testing.T) {
	cfg := DatabaseConfig{Host: "h", User: "u", Password: "p", DBName: "d"}
	if !cfg.Configured() {
		t.Fatal("full config must be configured")
	}

	for _, mutate := range []func(*DatabaseConfig){
		func(c *DatabaseConfig) { c.Host = "" },
		func(c *DatabaseConfig) { c.User = "" },
		func(c *DatabaseConfig) { c.Password = "" },
		func(c *DatabaseConfig) { c.DBName = "" },
	} {
		c := cfg
		mutate(&c)
		if c.Configured() {
			t.Fatalf("missing field must report unconfigured: %+v", c)
		}
	}
}
