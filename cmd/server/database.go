package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/studydesk/internal/config"
	"github.com/phrazzld/studydesk/internal/platform/memory"
	"github.com/phrazzld/studydesk/internal/platform/postgres"
	"github.com/phrazzld/studydesk/internal/platform/sqlite"
	"github.com/phrazzld/studydesk/internal/store"
)

// openStore opens the key/value store selected by cfg.Driver.
func openStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (store.KeyValueStore, error) {
	switch cfg.Driver {
	case "sqlite":
		kv, err := sqlite.Open(ctx, cfg.Path, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("SQLite store opened", slog.String("path", cfg.Path))
		return kv, nil
	case "postgres":
		kv, err := postgres.Open(ctx, cfg.URL, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Postgres store opened")
		return kv, nil
	case "memory":
		logger.Warn("using in-memory store, state is lost on exit")
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
