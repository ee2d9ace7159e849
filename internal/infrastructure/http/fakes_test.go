package httpserver

import (
	"context"

	"fxsnapshot/internal/application"
	"fxsnapshot/internal/domain"
)

type fakeRunner struct {
	res application.Result
	err error
}

func (f *fakeRunner) Run(context.Context) (application.Result, error) { return f.res, f.err }

type fakeReader struct {
	snaps map[domain.Currency]domain.Snapshot
	err   error
}

func (f *fakeReader) Latest(_ context.Context, base domain.Currency) (domain.Snapshot, error) {
	if f.err != nil {
		return domain.Snapshot{}, f.err
	}
	s, ok := f.snaps[base]
	if !ok {
		return domain.Snapshot{}, domain.ErrNotFound
	}
	return s, nil
}
