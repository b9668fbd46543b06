package config

import (
	"os"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, val string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	os.Setenv(key, val)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, "DATABASE_URL", "postgres://localhost/clinic")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.TokenTTLMinutes != 60 {
		t.Errorf("expected default token TTL 60, got %d", cfg.TokenTTLMinutes)
	}
	if cfg.DBMaxConns != 20 || cfg.DBMinConns != 5 {
		t.Errorf("unexpected pool defaults: max=%d min=%d", cfg.DBMaxConns, cfg.DBMinConns)
	}
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	setEnv(t, "DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestTokenTTL(t *testing.T) {
	cfg := &Config{TokenTTLMinutes: 15}
	if cfg.TokenTTL() != 15*time.Minute {
		t.Errorf("expected 15m, got %s", cfg.TokenTTL())
	}
}

func TestValidate_ProductionNeedsSecret(t *testing.T) {
	cfg := &Config{Env: "production", TokenTTLMinutes: 60}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for missing JWT_SECRET in production")
	}
}

func TestValidate_ShortSecretRejected(t *testing.T) {
	cfg := &Config{Env: "production", TokenTTLMinutes: 60, JWTSecret: "short"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for short JWT_SECRET")
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := &Config{
		Env:             "production",
		TokenTTLMinutes: 60,
		JWTSecret:       "0123456789abcdef0123456789abcdef",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidate_NonPositiveTTL(t *testing.T) {
	cfg := &Config{Env: "development", TokenTTLMinutes: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for zero TTL")
	}
}
