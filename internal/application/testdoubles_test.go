package application

import (
	"context"
	"errors"
	"time"

	"fxsnapshot/internal/domain"
)

var errDB = errors.New("connection refused")

type fakeFetcher struct {
	table domain.RateTable
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(context.Context, domain.Currency) (domain.RateTable, error) {
	f.calls++
	if f.err != nil {
		return domain.RateTable{}, f.err
	}
	return f.table, nil
}

type fakeWriter struct {
	written []domain.Snapshot
	err     error
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeWriter) Write(ctx context.Context, s domain.Snapshot) error {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if f.err != nil {
		return &domain.PersistenceError{Op: "connect", Err: f.err}
	}
	f.written = append(f.written, s)
	return nil
}

type fakeDedup struct {
	seen     map[string]bool
	released []string
	err      error
}

func (f *fakeDedup) TryReserve(_ context.Context, k string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	if f.seen[k] {
		return false, nil
	}
	f.seen[k] = true
	return true, nil
}

func (f *fakeDedup) Release(_ context.Context, k string) error {
	delete(f.seen, k)
	f.released = append(f.released, k)
	return nil
}

type fakePrinter struct{ printed []domain.Snapshot }

func (f *fakePrinter) Print(s domain.Snapshot) error {
	f.printed = append(f.printed, s)
	return nil
}

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type fixedID string

func (id fixedID) NewID() string { return string(id) }

func sampleTable() domain.RateTable {
	return domain.RateTable{
		Base: "USD",
		Date: "1999-01-01",
		Rates: map[string]float64{
			"USD": 1, "EUR": 0.9, "GBP": 0.8, "JPY": 150, "XYZ": 5,
		},
	}
}
