package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fxsnapshot/internal/application"
	"fxsnapshot/internal/domain"
	"fxsnapshot/internal/infrastructure/logx"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const undefinedTable = "42P01"

var (
	_ application.SnapshotWriter = (*SnapshotRepo)(nil)
	_ application.SnapshotReader = (*SnapshotRepo)(nil)
)

// SnapshotRepo appends snapshots to a table with one DECIMAL(10,4) column per
// configured currency. The column set follows the configuration, not the
// snapshot, so rates outside it are not stored.
type SnapshotRepo struct {
	db      *DB
	table   string
	columns []domain.Currency
	timeout time.Duration
}

func NewSnapshotRepo(db *DB, table string, columns []domain.Currency, timeout time.Duration) *SnapshotRepo {
	return &SnapshotRepo{db: db, table: table, columns: columns, timeout: timeout}
}

// Write holds a single pooled connection for the whole call, creates or widens
// the table and inserts one row in one transaction. Every row is appended;
// there is no uniqueness on (fecha, moneda_base).
func (r *SnapshotRepo) Write(ctx context.Context, s domain.Snapshot) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	log := logx.L().With(
		zap.String("repo", "snapshot"),
		zap.String("operation", "Write"),
		zap.String("table", r.table),
		zap.String("date", s.Date.Format(time.DateOnly)),
		zap.String("base", string(s.Base)),
	)

	conn, err := r.db.Pool.Acquire(ctx)
	if err != nil {
		log.Error("sql.acquire_failed", zap.Error(err))
		return &domain.PersistenceError{Op: "connect", Err: err}
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		log.Error("sql.begin_failed", zap.Error(err))
		return &domain.PersistenceError{Op: "begin", Err: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := r.ensureTable(ctx, tx); err != nil {
		log.Error("sql.ensure_table_failed", zap.Error(err))
		return &domain.PersistenceError{Op: "ensure table", Err: err}
	}

	for c := range s.Rates {
		if !r.hasColumn(c) {
			log.Warn("snapshot.rate_without_column", zap.String("currency", string(c)))
		}
	}

	ins := insertSQL(r.table, r.columns)
	log.Info("sql.exec_start", zap.String("sql", ins))
	tag, err := tx.Exec(ctx, ins, r.rowArgs(s)...)
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return &domain.PersistenceError{Op: "insert", Err: err}
	}
	if err := tx.Commit(ctx); err != nil {
		log.Error("sql.commit_failed", zap.Error(err))
		return &domain.PersistenceError{Op: "commit", Err: err}
	}
	log.Info("sql.exec_success", zap.Int64("rows_affected", tag.RowsAffected()))
	return nil
}

func (r *SnapshotRepo) ensureTable(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, createTableSQL(r.table, r.columns)); err != nil {
		return err
	}
	// The table may predate some of the configured currencies.
	for _, c := range r.columns {
		if _, err := tx.Exec(ctx, addColumnSQL(r.table, c)); err != nil {
			return fmt.Errorf("add column %s: %w", columnName(c), err)
		}
	}
	return nil
}

func (r *SnapshotRepo) hasColumn(c domain.Currency) bool {
	for _, col := range r.columns {
		if col == c {
			return true
		}
	}
	return false
}

func (r *SnapshotRepo) rowArgs(s domain.Snapshot) []any {
	args := make([]any, 0, len(r.columns)+2)
	args = append(args, s.Date, string(s.Base))
	for _, c := range r.columns {
		v, ok := s.Rates[c]
		if !ok {
			args = append(args, nil)
			continue
		}
		args = append(args, decimal.NewFromFloat(v).Round(4))
	}
	return args
}

// Latest returns the most recent row stored for base, limited to the
// configured columns. NULL columns are left out of Rates.
func (r *SnapshotRepo) Latest(ctx context.Context, base domain.Currency) (domain.Snapshot, error) {
	q := latestSQL(r.table, r.columns)
	log := logx.L().With(
		zap.String("repo", "snapshot"),
		zap.String("operation", "Latest"),
		zap.String("sql", q),
		zap.String("base", string(base)),
	)

	var (
		date    time.Time
		rowBase string
		values  = make([]*string, len(r.columns))
	)
	dest := []any{&date, &rowBase}
	for i := range values {
		dest = append(dest, &values[i])
	}

	err := r.db.Pool.QueryRow(ctx, q, string(base)).Scan(dest...)
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		log.Info("sql.query_no_rows")
		return domain.Snapshot{}, domain.ErrNotFound
	case errors.As(err, &pgErr) && pgErr.Code == undefinedTable:
		log.Info("sql.query_no_table")
		return domain.Snapshot{}, domain.ErrNotFound
	case err != nil:
		log.Error("sql.query_failed", zap.Error(err))
		return domain.Snapshot{}, err
	}

	out := domain.Snapshot{
		Date:  date,
		Base:  domain.Currency(rowBase),
		Rates: make(domain.NormalizedRates, len(r.columns)),
	}
	for i, c := range r.columns {
		if values[i] == nil {
			continue
		}
		d, err := decimal.NewFromString(*values[i])
		if err != nil {
			return domain.Snapshot{}, fmt.Errorf("parse %s=%q: %w", columnName(c), *values[i], err)
		}
		out.Rates[c] = d.InexactFloat64()
	}
	log.Info("sql.query_success", zap.String("date", date.Format(time.DateOnly)))
	return out, nil
}
