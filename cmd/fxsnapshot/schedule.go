package main

import (
	"context"
	"errors"
	"net/http"

	"fxsnapshot/internal/bootstrap"
	"fxsnapshot/internal/config"
	infraconfig "fxsnapshot/internal/infrastructure/config"
	httpserver "fxsnapshot/internal/infrastructure/http"
	"fxsnapshot/internal/infrastructure/logx"
	"fxsnapshot/internal/infrastructure/worker"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newScheduleCmd(cfgp *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run the job on CRON_SPEC and serve the HTTP trigger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *cfgp
			ctx := cmd.Context()
			log := logx.L()

			app, cleanup, err := bootstrap.Init(ctx, cfg, cmd.OutOrStdout(), log)
			defer cleanup()
			if err != nil {
				return err
			}

			w, err := worker.NewCronWorker(app.Pipeline, cfg.CronSpec, cfg.CronLocation, cfg.RunOnStart, log)
			if err != nil {
				return err
			}
			srv := httpserver.NewServer(app.Pipeline, app.Repo, app.DB.Ping, cfg.BaseCurrency)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				w.Start(gctx)
				return nil
			})
			g.Go(func() error {
				return serveHTTP(gctx, cfg.HTTPAddr, httpserver.NewRouter(srv), log)
			})
			return g.Wait()
		},
	}
}

func serveHTTP(ctx context.Context, addr string, h http.Handler, log *zap.Logger) error {
	server := &http.Server{Addr: addr, Handler: h}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), infraconfig.DefaultShutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		log.Info("server stopped")
	}()

	log.Info("server started", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
