package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("PORT", "")
	t.Setenv("IDEMPOTENCY_TTL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.HTTP.Addr)
	}
	if cfg.Storage.Driver != StorageMemory {
		t.Fatalf("expected memory driver, got %s", cfg.Storage.Driver)
	}
	if cfg.Idempotency.TTL != 24*time.Hour {
		t.Fatalf("expected 24h ttl, got %s", cfg.Idempotency.TTL)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pawpairs.yaml")
	yml := `
http:
  addr: ":9000"
  read_timeout: 3s
storage:
  driver: bolt
  bolt_path: /tmp/from-file.db
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7070")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("BOLT_PATH", "")
	t.Setenv("IDEMPOTENCY_TTL", "90")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":7070" {
		t.Fatalf("env PORT should win, got %s", cfg.HTTP.Addr)
	}
	if cfg.HTTP.ReadTimeout != 3*time.Second {
		t.Fatalf("expected read timeout from file, got %s", cfg.HTTP.ReadTimeout)
	}
	if cfg.Storage.Driver != StorageBolt || cfg.Storage.BoltPath != "/tmp/from-file.db" {
		t.Fatalf("unexpected storage %#v", cfg.Storage)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected debug level from file, got %s", cfg.Log.Level)
	}
	if cfg.Idempotency.TTL != 90*time.Second {
		t.Fatalf("expected ttl 90s, got %s", cfg.Idempotency.TTL)
	}
}

func TestValidate_PostgresNeedsDSN(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = StoragePostgres
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error without dsn")
	}

	cfg.Storage.DSN = "postgres://localhost/pawpairs"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Storage.Driver = "mongo"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
