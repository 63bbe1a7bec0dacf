package config

import (
	"testing"
	"time"
)

func TestLoadRequiresAPIURL(t *testing.T) {
	t.Setenv("ICU_API_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when ICU_API_URL is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ICU_API_URL", "http://icu.example:8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("expected 30s poll interval, got %v", cfg.PollInterval)
	}
	if cfg.VitalsWindow != 24*time.Hour {
		t.Errorf("expected 24h vitals window, got %v", cfg.VitalsWindow)
	}
	if cfg.WebPort != "8080" || cfg.LogLevel != "INFO" {
		t.Errorf("unexpected defaults %q / %q", cfg.WebPort, cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ICU_API_URL", "http://icu.example:8080")
	t.Setenv("POLL_INTERVAL", "5")
	t.Setenv("WEB_PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PollInterval != 5*time.Second || cfg.WebPort != "9090" || cfg.LogLevel != "DEBUG" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}
