package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeDefaults(t *testing.T) {
	cfg, err := Decode(New())
	if err != nil {
		t.Fatalf("decode defaults failed: %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("default driver want sqlite got %s", cfg.Database.Driver)
	}
	if cfg.Catalog.IdentifierAttempts != 5 {
		t.Fatalf("default identifier attempts want 5 got %d", cfg.Catalog.IdentifierAttempts)
	}
	if cfg.Queue.Enabled || cfg.Redis.Enabled {
		t.Fatalf("redis and queue should be disabled by default")
	}
	if cfg.Queue.Queues["default"] != 10 {
		t.Fatalf("default queue weight want 10 got %d", cfg.Queue.Queues["default"])
	}
}

func TestEnvOverridesConfig(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("CATALOG_PRODUCT_CACHE_TTL_SECONDS", "60")

	cfg, err := Decode(New())
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.Database.Driver != "postgres" {
		t.Fatalf("env driver want postgres got %s", cfg.Database.Driver)
	}
	if cfg.Catalog.ProductCacheTTLSeconds != 60 {
		t.Fatalf("env cache ttl want 60 got %d", cfg.Catalog.ProductCacheTTLSeconds)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("MARKETPLACE_DOTENV_TEST=loaded\n"), 0o600); err != nil {
		t.Fatalf("write .env failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Unsetenv("MARKETPLACE_DOTENV_TEST")
	})

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("load dotenv failed: %v", err)
	}
	if got := os.Getenv("MARKETPLACE_DOTENV_TEST"); got != "loaded" {
		t.Fatalf("dotenv value want loaded got %q", got)
	}
}
