package pg

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"fxsnapshot/internal/infrastructure/logx"

	"github.com/golang-migrate/migrate/v4"
	pgdriver "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const (
	migrationsTable = "fxsnapshot_migrations"
	pingAttempts    = 30
	pingInterval    = 500 * time.Millisecond
)

// RunMigrations brings the canonical tipos_cambio table to the latest
// embedded version.
func RunMigrations(ctx context.Context, db *DB) error {
	m, closeAll, err := newMigrator(ctx, db)
	if err != nil {
		return err
	}
	defer closeAll()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migrate version: %w", err)
	}
	logx.L().Info("migrate.applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

func newMigrator(ctx context.Context, db *DB) (*migrate.Migrate, func(), error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, nil, fmt.Errorf("migrate src: %w", err)
	}
	sqldb, err := sql.Open("pgx", db.Pool.Config().ConnString())
	if err != nil {
		return nil, nil, fmt.Errorf("open sql db: %w", err)
	}
	if err := waitReachable(ctx, sqldb); err != nil {
		_ = sqldb.Close()
		return nil, nil, err
	}
	driver, err := pgdriver.WithInstance(sqldb, &pgdriver.Config{MigrationsTable: migrationsTable})
	if err != nil {
		_ = sqldb.Close()
		return nil, nil, fmt.Errorf("migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		_ = sqldb.Close()
		return nil, nil, fmt.Errorf("migrate init: %w", err)
	}
	// m.Close closes the driver, which owns sqldb.
	return m, func() { _, _ = m.Close() }, nil
}

// waitReachable pings until the server accepts connections. A freshly started
// container refuses them for a moment.
func waitReachable(ctx context.Context, sqldb *sql.DB) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	var err error
	for i := 0; i < pingAttempts; i++ {
		if err = sqldb.PingContext(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("ping db: %w", ctx.Err())
		case <-ticker.C:
		}
	}
	return fmt.Errorf("ping db: %w", err)
}
