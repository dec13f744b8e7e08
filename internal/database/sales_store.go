// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tomtom215/revets/internal/logging"
	"github.com/tomtom215/revets/internal/metrics"
	"github.com/tomtom215/revets/internal/sales"
)

// ReplaceSales makes table the entire content of the sales table.
//
// The previous table is dropped and recreated with table's columns, and the
// rows are inserted in batches, all inside one transaction: readers see either
// the old snapshot or the new one. Any error rolls the transaction back.
func (db *DB) ReplaceSales(ctx context.Context, table *sales.Table) (err error) {
	ctx, cancel := ensureContext(ctx, defaultWriteTimeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("replace", db.dialect.name, time.Since(start), err)
	}()

	if table == nil || len(table.Columns) == 0 {
		return ErrEmptyTable
	}

	ddl, err := db.createTableSQL(table.Columns)
	if err != nil {
		return err
	}

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin replace transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback() // the original error is more useful
		}
	}()

	if _, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(db.table)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", db.table, err)
	}
	if _, err = tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create table %s: %w", db.table, err)
	}

	columns := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		columns[i] = quoteIdent(c.Name)
	}

	for lo := 0; lo < len(table.Rows); lo += db.batchSize {
		hi := min(lo+db.batchSize, len(table.Rows))
		if err = db.insertBatch(ctx, tx, columns, table.Rows[lo:hi]); err != nil {
			return fmt.Errorf("failed to insert rows %d-%d: %w", lo+1, hi, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit replace of %s: %w", db.table, err)
	}

	metrics.DBRowsWritten.WithLabelValues(db.dialect.name).Add(float64(table.Len()))
	logging.Ctx(ctx).Info().
		Str("driver", db.dialect.name).
		Str("table", db.table).
		Int("rows", table.Len()).
		Int("columns", len(table.Columns)).
		Dur("duration", time.Since(start)).
		Msg("Sales table replaced")

	return nil
}

func (db *DB) createTableSQL(columns []sales.Column) (string, error) {
	defs := make([]string, len(columns))
	for i, c := range columns {
		sqlType, err := db.dialect.columnType(c.Type)
		if err != nil {
			return "", err
		}
		defs[i] = quoteIdent(c.Name) + " " + sqlType
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(db.table), strings.Join(defs, ", ")), nil
}

func (db *DB) insertBatch(ctx context.Context, tx *sqlx.Tx, columns []string, rows [][]any) error {
	insert := db.builder.Insert(quoteIdent(db.table)).Columns(columns...)
	for _, row := range rows {
		args := make([]any, len(row))
		for i, v := range row {
			args[i] = db.dialect.bind(v)
		}
		insert = insert.Values(args...)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}
