package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.PaymentAttempts != 3 {
		t.Errorf("PaymentAttempts = %d, want 3", cfg.App.PaymentAttempts)
	}
	if cfg.App.ServiceName != "order-service" {
		t.Errorf("ServiceName = %q", cfg.App.ServiceName)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("app:\n  service_name: checkout\n  payment_attempts: 5\ninfra:\n  redis:\n    addr: redis:6379\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.ServiceName != "checkout" {
		t.Errorf("ServiceName = %q, want checkout", cfg.App.ServiceName)
	}
	if cfg.App.PaymentAttempts != 5 {
		t.Errorf("PaymentAttempts = %d, want 5", cfg.App.PaymentAttempts)
	}
	if cfg.Infra.Redis.Addr != "redis:6379" {
		t.Errorf("Redis.Addr = %q", cfg.Infra.Redis.Addr)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("SERVICE_NAME", "from-env")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.ServiceName != "from-env" {
		t.Errorf("ServiceName = %q, want from-env", cfg.App.ServiceName)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load accepted a missing file")
	}
}
