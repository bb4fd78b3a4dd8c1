package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Addr != "0.0.0.0:8080" {
		t.Errorf("Server.Addr: got %q, want 0.0.0.0:8080", cfg.Server.Addr)
	}
	if cfg.Database.Path != "data/todolist.db" {
		t.Errorf("Database.Path: got %q, want data/todolist.db", cfg.Database.Path)
	}
	if cfg.Auth.TokenTTLMinutes != 60 {
		t.Errorf("Auth.TokenTTLMinutes: got %d, want 60", cfg.Auth.TokenTTLMinutes)
	}
	if cfg.Auth.RefreshTTLHours != 24 {
		t.Errorf("Auth.RefreshTTLHours: got %d, want 24", cfg.Auth.RefreshTTLHours)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TODO_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("TODO_AUTH_JWTSECRET", "from-env")
	t.Setenv("TODO_AUTH_TOKENTTLMINUTES", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9999" {
		t.Errorf("Server.Addr: got %q, want 127.0.0.1:9999", cfg.Server.Addr)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Errorf("Auth.JWTSecret: got %q, want from-env", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.TokenTTLMinutes != 5 {
		t.Errorf("Auth.TokenTTLMinutes: got %d, want 5", cfg.Auth.TokenTTLMinutes)
	}
}

func TestDotEnvDoesNotClobberEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TODO_DATABASE_PATH=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	t.Setenv("TODO_DATABASE_PATH", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Path != "from-env" {
		t.Errorf("Database.Path: got %q, want from-env", cfg.Database.Path)
	}
}
