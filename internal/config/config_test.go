package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.Backend != BackendSQLite {
		t.Errorf("Expected backend sqlite, got %q", cfg.Backend)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Expected server addr :8080, got %q", cfg.Server.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config invalid: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Redis.Prefix != "things:" || cfg.Logging.Level != "info" {
		t.Errorf("Unexpected defaults: %#v", cfg)
	}
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := Default()
	want.Backend = BackendRedis
	want.Redis.Addr = "redis:6380"
	want.Redis.DB = 2
	want.Logging.Format = "json"
	if err := Write(path, want); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Backend != BackendRedis || got.Redis.Addr != "redis:6380" || got.Redis.DB != 2 || got.Logging.Format != "json" {
		t.Errorf("Round trip mismatch: %#v", got)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":9000\"\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("THINGS_SERVER_ADDR", ":7000")

	cfg, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("Expected env override :7000, got %q", cfg.Server.Addr)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend: postgres\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(New(), path); err == nil {
		t.Fatal("Expected error for unknown backend")
	}
}
