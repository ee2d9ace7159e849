package bootstrap

import (
	"context"
	"fmt"
	"io"

	"fxsnapshot/internal/application"
	"fxsnapshot/internal/config"
	"fxsnapshot/internal/infrastructure/pg"

	"go.uber.org/zap"
)

// App holds everything a command needs for one process lifetime.
type App struct {
	Config   config.Config
	DB       *pg.DB
	Repo     *pg.SnapshotRepo
	Pipeline *application.Pipeline
	Log      *zap.Logger
}

// Init wires the application from cfg. The returned cleanup releases
// resources in reverse order and is safe to call after a failed Init.
func Init(ctx context.Context, cfg config.Config, out io.Writer, log *zap.Logger) (*App, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	db, closeDB, err := ProvideDB(ctx, log, cfg)
	if err != nil {
		return nil, cleanup, err
	}
	cleanups = append(cleanups, closeDB)

	if cfg.MigrateOnStart {
		if err := pg.RunMigrations(ctx, db); err != nil {
			return nil, cleanup, fmt.Errorf("migrate: %w", err)
		}
	}

	fetcher, err := ProvideRateFetcher(cfg, log)
	if err != nil {
		return nil, cleanup, err
	}
	dedup, closeDedup, err := ProvideDedup(cfg)
	if err != nil {
		return nil, cleanup, err
	}
	cleanups = append(cleanups, closeDedup)

	repo := ProvideSnapshotRepo(db, cfg)
	return &App{
		Config:   cfg,
		DB:       db,
		Repo:     repo,
		Pipeline: ProvidePipeline(cfg, fetcher, repo, dedup, out, log),
		Log:      log,
	}, cleanup, nil
}
