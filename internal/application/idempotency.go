package application

import "context"

// DedupGuard prevents a second snapshot for the same date and base currency.
type DedupGuard interface {
	// TryReserve returns true if key was absent and is now reserved.
	// Returns false if the key already exists (duplicate).
	TryReserve(ctx context.Context, key string) (bool, error)
	// Release drops a reservation whose snapshot could not be stored.
	Release(ctx context.Context, key string) error
}

// NoopDedup always succeeds; duplicate rows per date are allowed.
type NoopDedup struct{}

func (NoopDedup) TryReserve(context.Context, string) (bool, error) { return true, nil }
func (NoopDedup) Release(context.Context, string) error            { return nil }
