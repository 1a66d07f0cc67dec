package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Postgres.Port != 5432 {
		t.Errorf("Postgres.Port = %d, want 5432", cfg.Postgres.Port)
	}
	if cfg.Postgres.Name != "pulsepoint" {
		t.Errorf("Postgres.Name = %q, want pulsepoint", cfg.Postgres.Name)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q, want localhost:6379", cfg.Redis.Addr)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("Auth.SessionTTL = %v, want 24h", cfg.Auth.SessionTTL)
	}
	if len(cfg.Webhooks.URLs) != 0 {
		t.Errorf("Webhooks.URLs = %v, want empty", cfg.Webhooks.URLs)
	}
}

func TestAppConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("REDIS_ADDR", "cache.internal:6379")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("WEBHOOK_URLS", "https://hooks.example.com/a, https://hooks.example.com/b")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("HTTP.Addr = %q, want :9090", cfg.HTTP.Addr)
	}
	if cfg.Postgres.Host != "db.internal" || cfg.Postgres.Port != 5433 {
		t.Errorf("Postgres = %s:%d, want db.internal:5433", cfg.Postgres.Host, cfg.Postgres.Port)
	}
	if cfg.Redis.Addr != "cache.internal:6379" {
		t.Errorf("Redis.Addr = %q", cfg.Redis.Addr)
	}
	if cfg.Auth.SessionTTL != time.Hour {
		t.Errorf("Auth.SessionTTL = %v, want 1h", cfg.Auth.SessionTTL)
	}
	if len(cfg.Webhooks.URLs) != 2 || cfg.Webhooks.URLs[1] != "https://hooks.example.com/b" {
		t.Errorf("Webhooks.URLs = %v", cfg.Webhooks.URLs)
	}
}

func TestSanitizeClampsValues(t *testing.T) {
	cfg := AppConfig{
		Auth:     AuthConfig{SessionTTL: -time.Hour, BcryptCost: 99},
		Webhooks: WebhookConfig{URLs: []string{" ", "https://hooks.example.com/a "}},
	}
	cfg.Sanitize()

	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h fallback", cfg.Auth.SessionTTL)
	}
	if cfg.Auth.BcryptCost != 31 {
		t.Errorf("BcryptCost = %d, want clamp to 31", cfg.Auth.BcryptCost)
	}
	if len(cfg.Webhooks.URLs) != 1 || cfg.Webhooks.URLs[0] != "https://hooks.example.com/a" {
		t.Errorf("Webhooks.URLs = %v", cfg.Webhooks.URLs)
	}
}

func TestDetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Error("IsDev = false, want true via NODE_ENV")
	}
}
