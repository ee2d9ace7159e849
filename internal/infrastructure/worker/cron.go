package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fxsnapshot/internal/application"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var _ application.Worker = (*CronWorker)(nil)

// Runner is satisfied by *application.Pipeline.
type Runner interface {
	Run(ctx context.Context) (application.Result, error)
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// CronWorker triggers a snapshot run on a cron schedule. Overlapping ticks are
// skipped while a run is still in flight.
type CronWorker struct {
	Runner     Runner
	Spec       string
	Location   *time.Location
	RunOnStart bool
	Log        *zap.Logger
}

func NewCronWorker(r Runner, spec string, loc *time.Location, runOnStart bool, log *zap.Logger) (*CronWorker, error) {
	if _, err := parser.Parse(spec); err != nil {
		return nil, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CronWorker{Runner: r, Spec: spec, Location: loc, RunOnStart: runOnStart, Log: log}, nil
}

func (w *CronWorker) Start(ctx context.Context) {
	log := w.Log.With(zap.String("worker", "cron"))
	c := cron.New(
		cron.WithLocation(w.Location),
		cron.WithParser(parser),
		cron.WithLogger(zapCronLogger{log.Sugar()}),
		cron.WithChain(cron.SkipIfStillRunning(zapCronLogger{log.Sugar()})),
	)
	if _, err := c.AddFunc(w.Spec, func() { w.runOnce(ctx, log) }); err != nil {
		log.Error("cron_worker.add_failed", zap.String("spec", w.Spec), zap.Error(err))
		return
	}

	if w.RunOnStart {
		w.runOnce(ctx, log)
	}

	c.Start()
	log.Info("cron_worker.started", zap.String("spec", w.Spec), zap.String("location", w.Location.String()))
	<-ctx.Done()
	stopCtx := c.Stop()
	<-stopCtx.Done()
	log.Info("cron_worker.stopped")
}

func (w *CronWorker) runOnce(ctx context.Context, log *zap.Logger) {
	res, err := w.Runner.Run(ctx)
	switch {
	case errors.Is(err, application.ErrRunInProgress):
		log.Warn("cron_worker.run_in_progress")
	case err != nil:
		log.Error("cron_worker.run_failed", zap.Error(err))
	case res.PersistErr != nil:
		log.Error("cron_worker.not_persisted", zap.String("run_id", res.RunID), zap.Error(res.PersistErr))
	default:
		log.Info("cron_worker.run_done",
			zap.String("run_id", res.RunID),
			zap.Bool("persisted", res.Persisted),
			zap.Bool("skipped", res.Skipped),
		)
	}
}

type zapCronLogger struct{ s *zap.SugaredLogger }

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw("cron."+msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw("cron."+msg, append(keysAndValues, "error", err)...)
}
