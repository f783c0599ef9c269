// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/canonical/property-service/internal/logging"
	"github.com/canonical/property-service/internal/monitoring"
	"github.com/canonical/property-service/internal/tracing"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

const (
	defaultPage uint64 = 1
	maxPageSize uint64 = 100
	txTimeout          = time.Minute
)

type lazyTxKey struct{}

type Config struct {
	Driver          string
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	TracingEnabled  bool
}

// Offset converts a 1-based page number into a row offset.
func Offset(page int64, pageSize uint64) uint64 {
	if page <= 0 {
		return (defaultPage - 1) * pageSize
	}
	return uint64(page-1) * pageSize
}

// PageSize clamps a requested page size to (0, maxPageSize].
func PageSize(size int64) uint64 {
	if size <= 0 || uint64(size) > maxPageSize {
		return maxPageSize
	}
	return uint64(size)
}

// lazyTx is the per request transaction, begun on the first statement.
type lazyTx struct {
	db   *sql.DB
	opts *sql.TxOptions

	tx     *sql.Tx
	cancel context.CancelFunc
	done   bool
}

func (lt *lazyTx) get() (*sql.Tx, error) {
	if lt.tx != nil {
		return lt.tx, nil
	}

	// detached from the request so a client disconnect cannot roll back a
	// transaction the handler already answered for
	ctx, cancel := context.WithTimeout(context.Background(), txTimeout)
	tx, err := lt.db.BeginTx(ctx, lt.opts)
	if err != nil {
		cancel()
		return nil, err
	}

	lt.tx, lt.cancel = tx, cancel
	return tx, nil
}

func (lt *lazyTx) finish(commit bool) error {
	if lt.tx == nil || lt.done {
		return nil
	}
	lt.done = true
	defer lt.cancel()

	if commit {
		return lt.tx.Commit()
	}

	if err := lt.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

func lazyTxFromContext(ctx context.Context) *lazyTx {
	lt, _ := ctx.Value(lazyTxKey{}).(*lazyTx)
	return lt
}

type DBClient struct {
	// pool is only set for postgres, sqlite goes straight through database/sql
	pool *pgxpool.Pool
	db   *sql.DB

	dialect     string
	placeholder sq.PlaceholderFormat
	txOptions   *sql.TxOptions

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Statement returns a builder bound to the request transaction when one is
// in the context, otherwise to the connection pool.
func (d *DBClient) Statement(ctx context.Context) sq.StatementBuilderType {
	b := sq.StatementBuilder.PlaceholderFormat(d.placeholder)

	if lt := lazyTxFromContext(ctx); lt != nil {
		tx, err := lt.get()
		if err == nil {
			return b.RunWith(tx)
		}
		d.logger.Errorf("failed to begin transaction, running outside of it: %v", err)
	}

	return b.RunWith(d.db)
}

// Dialect returns either DialectPostgres or DialectSQLite.
func (d *DBClient) Dialect() string {
	return d.dialect
}

// DB exposes the underlying connection, used to run migrations at startup.
func (d *DBClient) DB() *sql.DB {
	return d.db
}

// WithTx runs fn with a transaction that is begun on first use, committed
// when fn succeeds and rolled back otherwise. Nested calls join the outer
// transaction and leave completion to it.
func (d *DBClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	if lazyTxFromContext(ctx) != nil {
		return fn(ctx)
	}

	lt := &lazyTx{db: d.db, opts: d.txOptions}

	if err := fn(context.WithValue(ctx, lazyTxKey{}, lt)); err != nil {
		if rerr := lt.finish(false); rerr != nil {
			d.logger.Errorf("failed to rollback transaction: %v", rerr)
		}
		return err
	}

	if err := lt.finish(true); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (d *DBClient) Close() {
	if d.db != nil {
		_ = d.db.Close()
	}

	if d.pool != nil {
		d.pool.Close()
	}
}

// NewDBClient creates a new DBClient for the configured driver.
func NewDBClient(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*DBClient, error) {
	switch cfg.Driver {
	case DialectSQLite:
		return newSQLiteClient(cfg, tracer, monitor, logger)
	case DialectPostgres, "":
		return newPostgresClient(cfg, tracer, monitor, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func newPostgresClient(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*DBClient, error) {
	config, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("DSN validation failed: %v", err)
	}

	if cfg.TracingEnabled {
		// otelpgx.NewTracer will use default global TracerProvider, just like our tracer struct
		config.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	config.MaxConns = cfg.MaxConns
	config.MinConns = cfg.MinConns
	config.MaxConnLifetime = cfg.MaxConnLifetime
	config.MaxConnLifetimeJitter = cfg.MaxConnLifetime / 10 // Add 10% jitter to avoid thundering herd
	config.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %v", err)
	}

	if cfg.TracingEnabled {
		// when tracing is enabled, also collect metrics
		if err := otelpgx.RecordStats(pool); err != nil {
			return nil, fmt.Errorf("failed to start metrics collection for database: %v", err)
		}
	}

	db := stdlib.OpenDBFromPool(pool)

	d := NewDBClientFromDB(db, DialectPostgres, tracer, monitor, logger)
	d.pool = pool

	if err := d.ping(); err != nil {
		d.Close()
		return nil, err
	}

	return d, nil
}

func newSQLiteClient(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*DBClient, error) {
	db, err := sql.Open(DialectSQLite, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %v", err)
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(int(cfg.MaxConns))
	}
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	d := NewDBClientFromDB(db, DialectSQLite, tracer, monitor, logger)

	if err := d.ping(); err != nil {
		d.Close()
		return nil, err
	}

	return d, nil
}

// NewDBClientFromDB wraps an already opened database handle.
func NewDBClientFromDB(db *sql.DB, dialect string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *DBClient {
	d := new(DBClient)
	d.db = db
	d.dialect = dialect

	switch dialect {
	case DialectSQLite:
		d.placeholder = sq.Question
		// sqlite only offers serializable transactions
		d.txOptions = &sql.TxOptions{}
	default:
		d.placeholder = sq.Dollar
		d.txOptions = &sql.TxOptions{Isolation: sql.LevelReadCommitted, ReadOnly: false}
	}

	d.tracer = tracer
	d.monitor = monitor
	d.logger = logger

	return d
}

func (d *DBClient) ping() error {
	tags := map[string]string{"component": "database"}

	if err := d.db.Ping(); err != nil {
		_ = d.monitor.SetDependencyAvailability(tags, 0)
		return fmt.Errorf("failed to connect to the database: %v", err)
	}

	_ = d.monitor.SetDependencyAvailability(tags, 1)
	return nil
}
