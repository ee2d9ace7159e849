package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fxsnapshot/internal/domain"

	"go.uber.org/zap"
)

// Result describes one pass of the pipeline. A failed write does not make Run
// return an error; it is reported through PersistErr so the caller decides
// whether the run failed.
type Result struct {
	RunID      string
	Snapshot   domain.Snapshot
	Missing    []domain.Currency
	Persisted  bool
	Skipped    bool
	PersistErr error
}

type Pipeline struct {
	fetcher RateFetcher
	writer  SnapshotWriter
	base    domain.Currency
	targets []domain.Currency

	dedup    DedupGuard
	printer  SnapshotPrinter
	clock    Clock
	idgen    IDGen
	location *time.Location
	log      *zap.Logger

	mu sync.Mutex
}

type Option func(*Pipeline)

func WithClock(c Clock) Option               { return func(p *Pipeline) { p.clock = c } }
func WithIDGen(g IDGen) Option               { return func(p *Pipeline) { p.idgen = g } }
func WithDedup(d DedupGuard) Option          { return func(p *Pipeline) { p.dedup = d } }
func WithPrinter(pr SnapshotPrinter) Option  { return func(p *Pipeline) { p.printer = pr } }
func WithLocation(loc *time.Location) Option { return func(p *Pipeline) { p.location = loc } }
func WithLogger(l *zap.Logger) Option        { return func(p *Pipeline) { p.log = l } }

func NewPipeline(fetcher RateFetcher, writer SnapshotWriter, base domain.Currency, targets []domain.Currency, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher: fetcher,
		writer:  writer,
		base:    base,
		targets: targets,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.clock == nil {
		p.clock = realClock{}
	}
	if p.idgen == nil {
		p.idgen = defaultIDGen{}
	}
	if p.dedup == nil {
		p.dedup = NoopDedup{}
	}
	if p.location == nil {
		p.location = time.Local
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	return p
}

func (p *Pipeline) Base() domain.Currency      { return p.base }
func (p *Pipeline) Targets() []domain.Currency { return p.targets }

// Run executes fetch, normalize, build and write once. Concurrent calls are
// rejected with ErrRunInProgress.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	if !p.mu.TryLock() {
		return Result{}, ErrRunInProgress
	}
	defer p.mu.Unlock()

	res := Result{RunID: p.idgen.NewID()}
	log := p.log.With(zap.String("run_id", res.RunID), zap.String("base", string(p.base)))
	log.Info("pipeline.start")

	raw, err := p.fetcher.Fetch(ctx, p.base)
	if err != nil {
		log.Error("pipeline.fetch_failed", zap.Error(err))
		return res, fmt.Errorf("fetch: %w", err)
	}
	log.Info("pipeline.fetched", zap.Int("rates", len(raw.Rates)), zap.String("source_date", raw.Date))

	normalized := Normalize(raw, p.base, p.targets)
	res.Missing = MissingTargets(raw, p.targets)
	if len(res.Missing) > 0 {
		log.Warn("normalize.gap", zap.Strings("missing", currencyStrings(res.Missing)))
	}

	snap := BuildSnapshot(p.clock.Now().In(p.location), normalized, p.base)
	res.Snapshot = snap
	if p.printer != nil {
		if err := p.printer.Print(snap); err != nil {
			log.Warn("pipeline.print_failed", zap.Error(err))
		}
	}

	key := snap.Key()
	ok, err := p.dedup.TryReserve(ctx, key)
	if err != nil {
		// A broken guard must not stop the daily row.
		log.Warn("dedup.reserve_failed", zap.String("key", key), zap.Error(err))
		ok = true
	}
	if !ok {
		res.Skipped = true
		log.Info("pipeline.skipped_duplicate", zap.String("key", key))
		return res, nil
	}

	if err := p.writer.Write(ctx, snap); err != nil {
		res.PersistErr = err
		log.Error("pipeline.persist_failed", zap.Error(err))
		if rerr := p.dedup.Release(ctx, key); rerr != nil {
			log.Warn("dedup.release_failed", zap.String("key", key), zap.Error(rerr))
		}
		return res, nil
	}
	res.Persisted = true
	log.Info("pipeline.done",
		zap.String("date", snap.Date.Format(time.DateOnly)),
		zap.Int("columns", len(snap.Rates)),
	)
	return res, nil
}

func currencyStrings(cs []domain.Currency) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}
