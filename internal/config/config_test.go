package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}

	if cfg.App.Port != "8080" {
		t.Errorf("App.Port = %q, want 8080", cfg.App.Port)
	}
	if cfg.Lifecycle.StrictTransitions {
		t.Error("StrictTransitions should default to false")
	}
	if !cfg.Throttle.Enabled || cfg.Throttle.RequestsPerWindow != 10 {
		t.Errorf("Throttle = %+v, want enabled with 10 requests per window", cfg.Throttle)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("Auth.BcryptCost = %d, want 12", cfg.Auth.BcryptCost)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LIFECYCLE_STRICT_TRANSITIONS", "true")
	t.Setenv("THROTTLE_ENABLED", "false")
	t.Setenv("THROTTLE_WINDOW_SECONDS", "30")
	t.Setenv("POSTGRES_MAX_CONNS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}

	if cfg.App.Port != "9090" {
		t.Errorf("App.Port = %q, want 9090", cfg.App.Port)
	}
	if !cfg.Lifecycle.StrictTransitions {
		t.Error("StrictTransitions not picked up from env")
	}
	if cfg.Throttle.Enabled {
		t.Error("Throttle.Enabled not picked up from env")
	}
	if got := cfg.Throttle.Window(); got != 30*time.Second {
		t.Errorf("Throttle.Window() = %v, want 30s", got)
	}
	if cfg.Postgres.MaxConns != 10 {
		t.Errorf("MaxConns = %d, want fallback 10 on unparsable value", cfg.Postgres.MaxConns)
	}
}

func TestAppConfigHelpers(t *testing.T) {
	app := AppConfig{Host: "127.0.0.1", Port: "3000", RequestTimeoutSeconds: 15}
	if app.Addr() != "127.0.0.1:3000" {
		t.Errorf("Addr() = %q", app.Addr())
	}
	if app.RequestTimeout() != 15*time.Second {
		t.Errorf("RequestTimeout() = %v", app.RequestTimeout())
	}
	if (AppConfig{}).RequestTimeout() != 0 {
		t.Error("zero timeout should disable the deadline")
	}
}
