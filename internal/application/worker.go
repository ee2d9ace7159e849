package application

import "context"

// Worker runs scheduled snapshot passes until ctx is canceled.
type Worker interface {
	Start(ctx context.Context)
}
