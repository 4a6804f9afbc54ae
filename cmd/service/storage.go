package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/artofday/internal/adapters/storage/memory"
	"github.com/jsamuelsen/artofday/internal/adapters/storage/postgres"
	"github.com/jsamuelsen/artofday/internal/platform/config"
	"github.com/jsamuelsen/artofday/internal/ports"
)

// storage is the archive backend chosen by storage.driver.
type storage struct {
	archive    ports.PickArchive
	selections ports.SelectionStore
	health     ports.HealthChecker // nil for memory
	close      func()
}

func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	if cfg.Storage.Driver != "postgres" {
		return &storage{
			archive:    memory.NewArchive(),
			selections: memory.NewSelectionStore(),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.Connect(ctx, postgres.Config{
		URL:      cfg.Storage.Postgres.URL,
		MaxConns: cfg.Storage.Postgres.MaxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if cfg.Storage.Postgres.Migrate {
		applied, err := postgres.Migrate(ctx, pool, logger)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrating postgres: %w", err)
		}

		logger.Info("postgres schema ready", slog.Int("applied", len(applied)))
	}

	archive := postgres.NewArchive(pool)

	return &storage{
		archive:    archive,
		selections: postgres.NewSelectionStore(pool),
		health:     archive,
		close:      pool.Close,
	}, nil
}
