package application

import (
	"context"

	"fxsnapshot/internal/domain"
)

// RateFetcher returns the raw rate table the source publishes for base.
type RateFetcher interface {
	Fetch(ctx context.Context, base domain.Currency) (domain.RateTable, error)
}

// SnapshotWriter durably appends one snapshot row.
// Failures are reported as *domain.PersistenceError.
type SnapshotWriter interface {
	Write(ctx context.Context, s domain.Snapshot) error
}

type SnapshotReader interface {
	Latest(ctx context.Context, base domain.Currency) (domain.Snapshot, error)
}

type SnapshotPrinter interface {
	Print(s domain.Snapshot) error
}
