package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestReadDefaults(t *testing.T) {
	chdirTemp(t)

	c, err := Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if c.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", c.Server.Port)
	}
	if c.Logging.Level != zapcore.InfoLevel {
		t.Errorf("expected info level, got %s", c.Logging.Level)
	}
	if c.Render.CacheTTL != 10*time.Minute {
		t.Errorf("expected 10m cache ttl, got %s", c.Render.CacheTTL)
	}
	if !c.InsecureSession() {
		t.Errorf("expected development session secret")
	}
}

func TestReadEnvAndFile(t *testing.T) {
	chdirTemp(t)

	yaml := "logging:\n  level: warn\nrender:\n  cachesize: 42\n"
	if err := os.WriteFile(filepath.Join(".", "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://feed@db/feed")
	t.Setenv("SESSION_SECRET", "s3cret")

	c, err := Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if c.Server.Port != 9090 {
		t.Errorf("expected port from env, got %d", c.Server.Port)
	}
	if c.Database.URL != "postgres://feed@db/feed" {
		t.Errorf("unexpected database url %q", c.Database.URL)
	}
	if c.Logging.Level != zapcore.WarnLevel {
		t.Errorf("expected warn level from file, got %s", c.Logging.Level)
	}
	if c.Render.CacheSize != 42 {
		t.Errorf("expected cache size from file, got %d", c.Render.CacheSize)
	}
	if c.InsecureSession() {
		t.Errorf("expected configured session secret")
	}
}
