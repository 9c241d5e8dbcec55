package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("SIMULATED_DELAY", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("expected port 8080, got %s", cfg.Port)
		}
		if cfg.SimulatedDelay != 0 {
			t.Errorf("expected no simulated delay, got %s", cfg.SimulatedDelay)
		}
		if cfg.JWTExpirationDur != 24*time.Hour {
			t.Errorf("expected 24h JWT expiry, got %s", cfg.JWTExpirationDur)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("SIMULATED_DELAY", "2s")
		t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != "9090" {
			t.Errorf("expected port 9090, got %s", cfg.Port)
		}
		if cfg.SimulatedDelay != 2*time.Second {
			t.Errorf("expected 2s delay, got %s", cfg.SimulatedDelay)
		}
		if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
			t.Errorf("unexpected CORS origins: %v", cfg.CORSOrigins)
		}
	})

	t.Run("invalid duration falls back", func(t *testing.T) {
		t.Setenv("JWT_EXPIRES_IN", "forever")
		cfg, _ := Load()
		if cfg.JWTExpirationDur != 24*time.Hour {
			t.Errorf("expected fallback 24h, got %s", cfg.JWTExpirationDur)
		}
	})
}
