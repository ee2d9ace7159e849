package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fxsnapshot/internal/config"
	"fxsnapshot/internal/infrastructure/logx"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Set via -ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// exitError carries a process exit status out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		code := 1
		var ee *exitError
		if errors.As(err, &ee) {
			code = ee.code
		}
		logx.L().Error("fxsnapshot.failed", zap.Error(err), zap.Int("exit_code", code))
		_ = logx.L().Sync()
		stop()
		os.Exit(code)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config.Config
	root := &cobra.Command{
		Use:           "fxsnapshot",
		Short:         "Daily exchange-rate snapshot job",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			configFile, _ := cmd.Flags().GetString("config")
			var err error
			cfg, err = config.Load(configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := logx.SetLevel(cfg.LogLevel); err != nil {
				return fmt.Errorf("LOG_LEVEL: %w", err)
			}
			return nil
		},
	}
	root.PersistentFlags().String("config", "", "config file (yaml or env)")

	root.AddCommand(newRunCmd(&cfg))
	root.AddCommand(newScheduleCmd(&cfg))
	root.AddCommand(newMigrateCmd(&cfg))
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fxsnapshot %s (%s)\n", version, commit)
		},
	}
}
