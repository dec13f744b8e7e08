// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/revets/internal/sales"
)

const stageBatchSize = 500

// copyStaged streams the sales table from a non-DuckDB store into an
// in-memory DuckDB table with equivalent column types, then writes the
// Parquet file from there.
func (e *Exporter) copyStaged(ctx context.Context, path string) (int64, error) {
	source, err := e.db.QuerySales(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = source.Close()
	}()

	columnTypes, err := source.ColumnTypes()
	if err != nil {
		return 0, fmt.Errorf("failed to read column types: %w", err)
	}

	stage, err := sql.Open("duckdb", "")
	if err != nil {
		return 0, fmt.Errorf("failed to open staging database: %w", err)
	}
	defer func() {
		_ = stage.Close()
	}()
	stage.SetMaxOpenConns(1)

	table := quoteIdent(e.db.Table())
	columns := make([]string, len(columnTypes))
	stageTypes := make([]string, len(columnTypes))
	defs := make([]string, len(columnTypes))
	for i, ct := range columnTypes {
		columns[i] = quoteIdent(ct.Name())
		stageTypes[i] = stagingType(ct.DatabaseTypeName())
		defs[i] = columns[i] + " " + stageTypes[i]
	}

	if _, err := stage.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(defs, ", "))); err != nil {
		return 0, fmt.Errorf("failed to create staging table: %w", err)
	}

	var total int64
	batch := make([][]any, 0, stageBatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		insert := sq.Insert(table).Columns(columns...).PlaceholderFormat(sq.Question)
		for _, r := range batch {
			insert = insert.Values(r...)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build staging insert: %w", err)
		}
		if _, err := stage.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to stage rows: %w", err)
		}
		batch = batch[:0]
		return nil
	}

	for source.Next() {
		values := make([]any, len(columnTypes))
		ptrs := make([]any, len(columnTypes))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := source.Scan(ptrs...); err != nil {
			return 0, fmt.Errorf("failed to scan sales row: %w", err)
		}
		for i, v := range values {
			if values[i], err = stageValue(v, stageTypes[i]); err != nil {
				return 0, fmt.Errorf("row %d, column %s: %w", total+1, columnTypes[i].Name(), err)
			}
		}

		batch = append(batch, values)
		total++
		if len(batch) == stageBatchSize {
			if err := flush(); err != nil {
				return 0, err
			}
		}
	}
	if err := source.Err(); err != nil {
		return 0, fmt.Errorf("failed to read sales table: %w", err)
	}
	if err := flush(); err != nil {
		return 0, err
	}

	query := fmt.Sprintf("COPY %s TO %s (%s)", table, quoteLiteral(path), parquetOptions)
	if _, err := stage.ExecContext(ctx, query); err != nil {
		return 0, fmt.Errorf("failed to export Parquet: %w", err)
	}
	return total, nil
}

// stagingType maps a source column's database type name to a DuckDB type.
func stagingType(dbType string) string {
	t := strings.ToUpper(strings.TrimSpace(dbType))
	switch {
	case strings.Contains(t, "INT"):
		return "BIGINT"
	case strings.HasPrefix(t, "TIMESTAMP"), t == "DATETIME":
		return "TIMESTAMP"
	case t == "DATE":
		return "DATE"
	case strings.HasPrefix(t, "BOOL"):
		return "BOOLEAN"
	case strings.Contains(t, "REAL"), strings.Contains(t, "DOUBLE"), strings.Contains(t, "FLOAT"),
		strings.HasPrefix(t, "NUMERIC"), strings.HasPrefix(t, "DECIMAL"):
		return "DOUBLE"
	default:
		return "VARCHAR"
	}
}

// stageValue adapts a scanned value to its staging column. SQLite keeps
// dates as ISO text, so DATE columns may arrive as strings.
func stageValue(v any, stageType string) (any, error) {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	if s, ok := v.(string); ok && stageType == "DATE" {
		return sales.ParseDate(s)
	}
	return v, nil
}
