package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/budget.db")
	t.Setenv("ALERT_TRANSPORT", "AMQP")
	t.Setenv("ALERT_EVALUATION_TIMEOUT", "750ms")
	t.Setenv("ALERT_DEFAULT_THRESHOLD", "90")
	t.Setenv("ALERT_EMAIL_ENABLED", "true")
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg := Load()

	if cfg.Database.Driver != "sqlite" || cfg.Database.SQLitePath != "/tmp/budget.db" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Alerts.Transport != AlertTransportAMQP {
		t.Errorf("transport = %s, want amqp", cfg.Alerts.Transport)
	}
	if cfg.Alerts.EvaluationTimeout != 750*time.Millisecond {
		t.Errorf("evaluation timeout = %v", cfg.Alerts.EvaluationTimeout)
	}
	if cfg.Alerts.DefaultThreshold != 90 || !cfg.Alerts.EmailEnabled {
		t.Errorf("alerts = %+v", cfg.Alerts)
	}
	if cfg.RateLimit.Enabled || cfg.RateLimit.Window != 30*time.Second || cfg.RateLimit.Requests != 60 {
		t.Errorf("rate limit = %+v", cfg.RateLimit)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("invalid port should fall back to default, got %d", cfg.Server.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"unknown transport", func(c *Config) { c.Alerts.Transport = "kafka" }, true},
		{"threshold zero", func(c *Config) { c.Alerts.DefaultThreshold = 0 }, true},
		{"threshold above 100", func(c *Config) { c.Alerts.DefaultThreshold = 101 }, true},
		{"no attempts", func(c *Config) { c.Alerts.DispatchAttempts = 0 }, true},
		{"default secret in production", func(c *Config) { c.Server.Environment = "production" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for level, want := range tests {
		if got := (LogConfig{Level: level}).SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", level, got, want)
		}
	}
}
