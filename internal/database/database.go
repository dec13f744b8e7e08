// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/tomtom215/revets/internal/config"
	"github.com/tomtom215/revets/internal/logging"
)

const (
	defaultQueryTimeout = 30 * time.Second
	defaultWriteTimeout = 10 * time.Minute
	defaultBatchSize    = 500
)

// DB is a handle on the store holding the sales table. One handle is opened
// per process and shared by every operation of a run.
type DB struct {
	conn      *sqlx.DB
	cfg       *config.DatabaseConfig
	dialect   dialect
	builder   sq.StatementBuilderType
	table     string
	batchSize int
}

// Open connects to the store selected by cfg.Driver. For file-backed stores
// the parent directory of cfg.Path is created if needed.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (*DB, error) {
	d, err := lookupDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	if d.fileBacked {
		// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
		if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	conn, err := sqlx.Open(d.sqlDriver, dataSourceName(d, cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", d.name, err)
	}

	if d.name == DriverSQLite {
		// A second connection would see SQLITE_BUSY while the replace transaction is open.
		conn.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to %s database: %w", d.name, err)
	}

	table := cfg.Table
	if table == "" {
		table = "sales"
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}

	logging.Ctx(ctx).Debug().Str("driver", d.name).Str("table", table).Msg("Database opened")

	return &DB{
		conn:      conn,
		cfg:       cfg,
		dialect:   d,
		builder:   sq.StatementBuilder.PlaceholderFormat(d.placeholder),
		table:     table,
		batchSize: batch,
	}, nil
}

// dataSourceName builds the driver DSN. DuckDB gets the tuning options as URL parameters.
func dataSourceName(d dialect, cfg *config.DatabaseConfig) string {
	if d.name != DriverDuckDB {
		return cfg.Path
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	dsn := fmt.Sprintf("%s?access_mode=read_write&threads=%d", cfg.Path, threads)
	if cfg.MaxMemory != "" {
		dsn += "&max_memory=" + cfg.MaxMemory
	}
	return dsn
}

// Driver returns the configured driver name (duckdb, sqlite, postgres).
func (db *DB) Driver() string {
	return db.dialect.name
}

// Table returns the name of the sales table.
func (db *DB) Table() string {
	return db.table
}

// Conn returns the underlying SQL database connection.
// The exporter uses it to run DuckDB's COPY directly.
func (db *DB) Conn() *sql.DB {
	return db.conn.DB
}

// Ping verifies the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// Close closes the connection. DuckDB is checkpointed first so the file
// holds the latest snapshot without a WAL to replay.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}

	if db.dialect.name == DriverDuckDB {
		ctx, cancel := context.WithTimeout(context.Background(), defaultQueryTimeout)
		if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
			logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
		}
		cancel()
	}

	return db.conn.Close()
}

// ensureContext applies timeout when ctx carries no deadline of its own.
func ensureContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), timeout)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	return ctx, func() {}
}
