package main

import (
	"fmt"

	"fxsnapshot/internal/bootstrap"
	"fxsnapshot/internal/config"
	"fxsnapshot/internal/infrastructure/logx"
	"fxsnapshot/internal/infrastructure/pg"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Fetch, normalize and store one snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := logx.L()

			app, cleanup, err := bootstrap.Init(ctx, *cfg, cmd.OutOrStdout(), log)
			defer cleanup()
			if err != nil {
				return err
			}

			res, err := app.Pipeline.Run(ctx)
			if err != nil {
				return &exitError{code: 1, err: err}
			}
			if res.PersistErr != nil {
				if cfg.StrictPersistence {
					return &exitError{code: 2, err: fmt.Errorf("persist snapshot: %w", res.PersistErr)}
				}
				log.Warn("run.not_persisted", zap.String("run_id", res.RunID), zap.Error(res.PersistErr))
				return nil
			}
			log.Info("run.done",
				zap.String("run_id", res.RunID),
				zap.Bool("persisted", res.Persisted),
				zap.Bool("skipped", res.Skipped),
			)
			return nil
		},
	}
}

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the destination table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, cleanup, err := bootstrap.ProvideDB(ctx, logx.L(), *cfg)
			defer cleanup()
			if err != nil {
				return err
			}
			if err := pg.RunMigrations(ctx, db); err != nil {
				return err
			}
			logx.L().Info("migrate.done")
			return nil
		},
	}
}
