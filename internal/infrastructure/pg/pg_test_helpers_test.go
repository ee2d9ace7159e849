package pg_test

import (
	"context"
	"os"
	"testing"
	"time"

	"fxsnapshot/internal/infrastructure/pg"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// newPostgres starts a throwaway server with the canonical table migrated.
// Containers are opt-in because they need a docker daemon.
func newPostgres(t *testing.T) *pg.DB {
	t.Helper()
	if os.Getenv("TESTCONTAINERS") == "" {
		t.Skip("set TESTCONTAINERS=1 to run containerized PG tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := postgres.RunContainer(ctx,
		postgres.WithDatabase("warehouse"),
		postgres.WithUsername("etl"),
		postgres.WithPassword("etl"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := pg.Connect(ctx, dsn, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, pg.RunMigrations(ctx, db))
	return db
}
