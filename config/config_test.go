package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func loadFrom(t *testing.T, yml string) (*Config, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)
	return LoadConfig()
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadFrom(t, `
http:
  addr: ":8080"
auth:
  jwtSecret: "s"
`)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Storage.Backend != "memory" {
		t.Fatalf("expected memory backend by default, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.TTL() != 0 {
		t.Fatalf("expected TTL 0 by default, got %v", cfg.Storage.TTL())
	}
	if cfg.Logging.Backend != "std" {
		t.Fatalf("expected std logging backend by default, got %q", cfg.Logging.Backend)
	}
}

func TestLoadConfig_SessionTTL(t *testing.T) {
	cfg, err := loadFrom(t, `
http:
  addr: ":8080"
auth:
  jwtSecret: "s"
storage:
  sessionTTL: "30m"
`)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Storage.TTL() != 30*time.Minute {
		t.Fatalf("expected 30m, got %v", cfg.Storage.TTL())
	}
}

// Кривой TTL — ошибка конфигурации, а не молчаливое "без истечения".
func TestLoadConfig_RejectsMalformedSessionTTL(t *testing.T) {
	_, err := loadFrom(t, `
http:
  addr: ":8080"
auth:
  jwtSecret: "s"
storage:
  sessionTTL: "5minutes"
`)
	if err == nil || !strings.Contains(err.Error(), "storage.sessionTTL") {
		t.Fatalf("expected sessionTTL parse error, got %v", err)
	}
}

func TestLoadConfig_RejectsNegativeSessionTTL(t *testing.T) {
	_, err := loadFrom(t, `
http:
  addr: ":8080"
auth:
  jwtSecret: "s"
storage:
  sessionTTL: "-5m"
`)
	if err == nil || !strings.Contains(err.Error(), "storage.sessionTTL") {
		t.Fatalf("expected negative TTL error, got %v", err)
	}
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	_, err := loadFrom(t, `
http:
  addr: ":8080"
`)
	if err == nil || !strings.Contains(err.Error(), "auth.jwtSecret") {
		t.Fatalf("expected jwtSecret error, got %v", err)
	}
}

func TestLoadConfig_PostgresRequiresDSN(t *testing.T) {
	_, err := loadFrom(t, `
http:
  addr: ":8080"
auth:
  jwtSecret: "s"
storage:
  backend: postgres
`)
	if err == nil || !strings.Contains(err.Error(), "storage.dsn") {
		t.Fatalf("expected dsn error, got %v", err)
	}
}
