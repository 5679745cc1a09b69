package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/studydesk/internal/config"
)

// loadAppConfig loads the application configuration from environment
// variables and the optional config file.
func loadAppConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// loadLocation resolves the zone grave timestamps are rendered in.
func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid server.timezone %q: %w", name, err)
	}
	return loc, nil
}

// logConfig records the effective configuration without secrets.
func logConfig(logger *slog.Logger, cfg *config.Config) {
	logger.Info("Server configuration loaded",
		slog.String("host", cfg.Server.Host),
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.Bool("ambient_enabled", cfg.Ambient.Enabled))
	if cfg.Storage.URL != "" {
		logger.Debug("Database configuration", slog.Bool("url_present", true))
	}
}
