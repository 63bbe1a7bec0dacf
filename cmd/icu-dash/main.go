package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/SaraAbidHussain/Intellicare-ICU-System/internal/config"
	"github.com/SaraAbidHussain/Intellicare-ICU-System/internal/icu"
	"github.com/SaraAbidHussain/Intellicare-ICU-System/internal/poller"
	"github.com/SaraAbidHussain/Intellicare-ICU-System/internal/state"
	"github.com/SaraAbidHussain/Intellicare-ICU-System/internal/web"
)

// version is set at build time via -ldflags "-X main.version=v1.0.0"
var version = "dev"

func main() {
	// Load config first to get log level
	cfg, err := config.Load()
	if err != nil {
		// Can't use slog yet as it isn't configured
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Configure slog with JSON handler and configured log level
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("Starting IntelliCare ICU Dashboard", "component", "Main", "version", version)
	slog.Info("Monitoring API", "component", "Main", "endpoint", cfg.APIBaseURL)
	slog.Info("Poll interval", "component", "Main", "interval", cfg.PollInterval)
	slog.Info("Vitals window", "component", "Main", "window", cfg.VitalsWindow)
	if cfg.DashUsername != "" && cfg.DashPassword != "" {
		slog.Info("Dashboard login enabled", "component", "Main", "username", cfg.DashUsername)
	}

	// Shared view state for the web UI
	dashState := state.New(500, cfg.APIBaseURL)

	client := icu.New(cfg.APIBaseURL)
	sched := poller.New(client, dashState, cfg.PollInterval)

	// Start the web UI server
	webServer := web.New(dashState, client, cfg, sched.TriggerFull, sched.TriggerPatients, version)
	webServer.Start()

	// Set up graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Runs the initial cycle immediately, then polls until shutdown.
	sched.Run(ctx)

	slog.Info("Shutting down gracefully", "component", "Main")
}

// parseLogLevel converts a string log level to slog.Level
func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
