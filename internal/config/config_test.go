package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("uses defaults when environment is empty", func(t *testing.T) {
		for _, key := range []string{"SERVER_PORT", "SERVER_HOST", "ADVISOR_TIMEOUT", "RETENTION_DAYS", "CORS_ORIGINS"} {
			t.Setenv(key, "")
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}

		if cfg.Server.Addr != "localhost:8001" {
			t.Errorf("Expected addr localhost:8001, got %s", cfg.Server.Addr)
		}
		if cfg.Advisor.Timeout != 15*time.Second {
			t.Errorf("Expected advisor timeout 15s, got %s", cfg.Advisor.Timeout)
		}
		if cfg.Retention.Days != 90 {
			t.Errorf("Expected retention 90 days, got %d", cfg.Retention.Days)
		}
		if len(cfg.CORS.AllowedOrigins) != 2 {
			t.Errorf("Expected 2 default origins, got %v", cfg.CORS.AllowedOrigins)
		}
	})

	t.Run("parses overrides", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9000")
		t.Setenv("ADVISOR_TIMEOUT", "5")
		t.Setenv("EXTRACTOR_TIMEOUT", "1500ms")
		t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}

		if cfg.Server.Port != "9000" {
			t.Errorf("Expected port 9000, got %s", cfg.Server.Port)
		}
		if cfg.Advisor.Timeout != 5*time.Second {
			t.Errorf("Expected 5s, got %s", cfg.Advisor.Timeout)
		}
		if cfg.Extractor.Timeout != 1500*time.Millisecond {
			t.Errorf("Expected 1.5s, got %s", cfg.Extractor.Timeout)
		}
		if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
			t.Errorf("Unexpected origins: %v", cfg.CORS.AllowedOrigins)
		}
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		t.Setenv("RETENTION_DAYS", "ninety")

		if _, err := Load(); err == nil {
			t.Error("Expected error for malformed RETENTION_DAYS")
		}
	})

	t.Run("rejects non-positive advisor timeout", func(t *testing.T) {
		t.Setenv("ADVISOR_TIMEOUT", "0s")

		if _, err := Load(); err == nil {
			t.Error("Expected error for zero ADVISOR_TIMEOUT")
		}
	})
}
