package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the dashboard.
type Config struct {
	// Remote monitoring API
	APIBaseURL string

	// Sync behaviour
	PollInterval time.Duration // How often to refresh patients and alerts
	VitalsWindow time.Duration // Trailing window fetched for the detail view

	// Web UI
	WebPort string

	// Optional dashboard login (enabled when both are set)
	DashUsername string
	DashPassword string

	// Logging
	LogLevel string // DEBUG, INFO, WARN, ERROR
}

// Load reads configuration from the environment (and an optional .env file)
// and validates that all required values are present.
func Load() (*Config, error) {
	// A missing .env is fine, real deployments set variables directly.
	_ = godotenv.Load()

	baseURL := os.Getenv("ICU_API_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("ICU_API_URL is required")
	}

	pollSec, _ := strconv.Atoi(getEnv("POLL_INTERVAL", "30"))
	windowSec, _ := strconv.Atoi(getEnv("VITALS_WINDOW", "86400"))

	return &Config{
		APIBaseURL:   baseURL,
		PollInterval: time.Duration(pollSec) * time.Second,
		VitalsWindow: time.Duration(windowSec) * time.Second,
		WebPort:      getEnv("WEB_PORT", "8080"),
		DashUsername: os.Getenv("DASH_USERNAME"),
		DashPassword: os.Getenv("DASH_PASSWORD"),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
	}, nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
