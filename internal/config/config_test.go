package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_HOST", "SERVER_PORT", "REQUEST_TIMEOUT", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL",
		"AI_API_KEY_ENV", "GEMINI_MODEL", "GEMINI_BASE_URL", "GEMINI_TIMEOUT",
		"CATALOG_SEED_FILE", "METRICS_ENABLED", "CLEANUP_INTERVAL", "SESSION_IDLE_TTL",
	} {
		t.Setenv(key, "")
	}
	// Empty values are read as set, so restore the ones Validate needs
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("AI_API_KEY_ENV", "API_KEY")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-flash")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("CORS_ALLOWED_ORIGINS", "*")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeout != 90*time.Second {
		t.Errorf("expected 90s request timeout, got %s", cfg.Server.RequestTimeout)
	}
	if cfg.AI.Timeout != 60*time.Second {
		t.Errorf("expected 60s AI timeout, got %s", cfg.AI.Timeout)
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics should be enabled by default")
	}
	if cfg.Cleanup.Interval != 5*time.Minute || cfg.Cleanup.IdleTTL != 2*time.Hour {
		t.Errorf("unexpected cleanup defaults %+v", cfg.Cleanup)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("unexpected addr %q", cfg.Addr())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("AI_API_KEY_ENV", "GEMINI_API_KEY")
	t.Setenv("GEMINI_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("REQUEST_TIMEOUT", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.AI.APIKeyEnv != "GEMINI_API_KEY" {
		t.Errorf("unexpected key env %q", cfg.AI.APIKeyEnv)
	}
	if cfg.AI.Timeout != 5*time.Second {
		t.Errorf("expected 5s, got %s", cfg.AI.Timeout)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "http://b.test" {
		t.Errorf("unexpected origins %v", cfg.Server.CORSOrigins)
	}
	if cfg.Metrics.Enabled {
		t.Error("metrics should be disabled")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8080, RequestTimeout: time.Second},
			Log:    LogConfig{Level: "info"},
			AI:     AIConfig{APIKeyEnv: "API_KEY", Model: "m", Timeout: time.Second},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
		{"no key env", func(c *Config) { c.AI.APIKeyEnv = " " }},
		{"no model", func(c *Config) { c.AI.Model = "" }},
		{"zero timeout", func(c *Config) { c.AI.Timeout = 0 }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	if lvl, err := ParseLogLevel("WARN"); err != nil || lvl != slog.LevelWarn {
		t.Errorf("ParseLogLevel(WARN) = %v, %v", lvl, err)
	}
}
