package bootstrap

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"fxsnapshot/internal/application"
	"fxsnapshot/internal/config"
	infraconfig "fxsnapshot/internal/infrastructure/config"
	"fxsnapshot/internal/infrastructure/console"
	"fxsnapshot/internal/infrastructure/httpx"
	"fxsnapshot/internal/infrastructure/pg"
	"fxsnapshot/internal/infrastructure/provider"
	redisstore "fxsnapshot/internal/infrastructure/redis"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ProvideDB opens the pool lazily, so an unreachable database surfaces on
// the first write and not here.
func ProvideDB(ctx context.Context, log *zap.Logger, cfg config.Config) (*pg.DB, func(), error) {
	db, err := pg.Connect(ctx, cfg.DB.DSN(), cfg.DBTimeout)
	if err != nil {
		return nil, func() {}, fmt.Errorf("connect pg: %w", err)
	}
	cleanup := func() {
		log.Info("closing pg")
		db.Close()
	}
	return db, cleanup, nil
}

func ProvideSnapshotRepo(db *pg.DB, cfg config.Config) *pg.SnapshotRepo {
	return pg.NewSnapshotRepo(db, cfg.TableName, cfg.Targets, cfg.DBTimeout)
}

func ProvideRateFetcher(cfg config.Config, log *zap.Logger) (application.RateFetcher, error) {
	switch cfg.Provider {
	case "http":
		return &provider.ExchangeRateAPIProvider{
			BaseURL: cfg.BaseURL,
			Client: &httpx.Client{
				HTTP:    &http.Client{Timeout: cfg.RequestTimeout},
				MaxBody: infraconfig.DefaultMaxBodyBytes,
				Log:     log,
			},
		}, nil
	case "fake":
		return provider.NewFake(), nil
	default:
		return nil, fmt.Errorf("unknown PROVIDER %q", cfg.Provider)
	}
}

func ProvideDedup(cfg config.Config) (application.DedupGuard, func(), error) {
	switch cfg.DedupBackend {
	case "", "none":
		return application.NoopDedup{}, func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return redisstore.New(client, cfg.DedupTTL), func() { _ = client.Close() }, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown DEDUP_BACKEND %q", cfg.DedupBackend)
	}
}

func ProvidePipeline(cfg config.Config, f application.RateFetcher, w application.SnapshotWriter, d application.DedupGuard, out io.Writer, log *zap.Logger) *application.Pipeline {
	opts := []application.Option{
		application.WithDedup(d),
		application.WithLocation(cfg.CronLocation),
		application.WithLogger(log),
	}
	if out != nil {
		opts = append(opts, application.WithPrinter(&console.TablePrinter{Out: out, Targets: cfg.Targets}))
	}
	return application.NewPipeline(f, w, cfg.BaseCurrency, cfg.Targets, opts...)
}
