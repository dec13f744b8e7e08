// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/revets/internal/config"
	"github.com/tomtom215/revets/internal/sales"
)

func TestReplaceSalesRoundTrip(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db *DB) {
		ctx := context.Background()
		table := salesTable(
			[]any{"CA-1", date(2023, time.February, 1), "Unknown", 100.0, int64(2), 0.0},
			[]any{"CA-2", nil, "98103", 20.5, nil, -1.5},
		)
		checkNoError(t, db.ReplaceSales(ctx, table))

		var got []struct {
			OrderID    string  `db:"order_id"`
			PostalCode string  `db:"postal_code"`
			Sales      float64 `db:"sales"`
			Quantity   *int64  `db:"quantity"`
			Profit     float64 `db:"profit"`
		}
		checkNoError(t, db.conn.SelectContext(ctx, &got,
			`SELECT order_id, postal_code, sales, quantity, profit FROM "sales" ORDER BY order_id`))

		if len(got) != 2 {
			t.Fatalf("rows = %d, want 2", len(got))
		}
		if got[0].PostalCode != "Unknown" || got[0].Sales != 100 || got[0].Profit != 0 {
			t.Errorf("row 1 = %+v", got[0])
		}
		if got[0].Quantity == nil || *got[0].Quantity != 2 {
			t.Errorf("row 1 quantity = %v, want 2", got[0].Quantity)
		}
		if got[1].Quantity != nil {
			t.Errorf("row 2 quantity = %v, want NULL", *got[1].Quantity)
		}
		if got[1].Profit != -1.5 {
			t.Errorf("row 2 profit = %v, want -1.5", got[1].Profit)
		}
	})
}

func TestReplaceSalesReplacesPreviousSnapshot(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db *DB) {
		ctx := context.Background()

		first := salesTable(
			row("A", date(2023, time.January, 1), 1),
			row("B", date(2023, time.January, 2), 2),
			row("C", date(2023, time.January, 3), 3),
			row("D", date(2023, time.January, 4), 4),
			row("E", date(2023, time.January, 5), 5),
		)
		checkNoError(t, db.ReplaceSales(ctx, first))

		second := salesTable(
			row("X", date(2024, time.March, 1), 10),
			row("Y", date(2024, time.March, 2), 20),
		)
		checkNoError(t, db.ReplaceSales(ctx, second))

		n, err := db.CountSales(ctx)
		checkNoError(t, err)
		if n != 2 {
			t.Errorf("row count = %d, want 2 (second run only)", n)
		}

		var ids []string
		checkNoError(t, db.conn.SelectContext(ctx, &ids, `SELECT order_id FROM "sales" ORDER BY order_id`))
		if len(ids) != 2 || ids[0] != "X" || ids[1] != "Y" {
			t.Errorf("order ids = %v, want [X Y]", ids)
		}
	})
}

func TestReplaceSalesChangesShape(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db *DB) {
		ctx := context.Background()
		checkNoError(t, db.ReplaceSales(ctx, salesTable(row("A", date(2023, time.January, 1), 1))))

		narrow := &sales.Table{
			Name:    "sales",
			Columns: []sales.Column{{Name: sales.ColumnSales, Type: sales.TypeFloat}, {Name: "sub-category", Type: sales.TypeString}},
			Rows:    [][]any{{5.0, "Chairs"}},
		}
		checkNoError(t, db.ReplaceSales(ctx, narrow))

		rows, err := db.QuerySales(ctx)
		checkNoError(t, err)
		defer rows.Close()
		cols, err := rows.Columns()
		checkNoError(t, err)
		if len(cols) != 2 || cols[1] != "sub-category" {
			t.Errorf("columns = %v, want [sales sub-category]", cols)
		}
	})
}

func TestReplaceSalesRollsBackOnError(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db *DB) {
		ctx := context.Background()
		checkNoError(t, db.ReplaceSales(ctx, salesTable(row("A", date(2023, time.January, 1), 1))))

		bad := &sales.Table{
			Name:    "sales",
			Columns: []sales.Column{{Name: sales.ColumnSales, Type: sales.TypeFloat}},
			Rows:    [][]any{{1.0, 2.0}}, // more values than columns fails inside the transaction
		}
		checkError(t, db.ReplaceSales(ctx, bad))

		n, err := db.CountSales(ctx)
		checkNoError(t, err)
		if n != 1 {
			t.Errorf("row count after failed replace = %d, want 1", n)
		}
	})
}

func TestReplaceSalesUnknownFieldType(t *testing.T) {
	db := openTestDB(t, DriverSQLite)

	bad := &sales.Table{
		Name:    "sales",
		Columns: []sales.Column{{Name: sales.ColumnSales, Type: sales.FieldType(99)}},
	}
	checkError(t, db.ReplaceSales(context.Background(), bad))
}

func TestReplaceSalesEmptyTable(t *testing.T) {
	db := openTestDB(t, DriverDuckDB)

	err := db.ReplaceSales(context.Background(), &sales.Table{Name: "sales"})
	if !errors.Is(err, ErrEmptyTable) {
		t.Errorf("error = %v, want ErrEmptyTable", err)
	}
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.DatabaseConfig{Driver: "oracle", Path: "x", Table: "sales"})
	checkError(t, err)
}

func TestDataSourceName(t *testing.T) {
	cfg := &config.DatabaseConfig{Driver: DriverDuckDB, Path: "sales.db", Threads: 4, MaxMemory: "1GB"}
	if got := dataSourceName(dialects[DriverDuckDB], cfg); got != "sales.db?access_mode=read_write&threads=4&max_memory=1GB" {
		t.Errorf("duckdb dsn = %q", got)
	}

	cfg = &config.DatabaseConfig{Driver: DriverSQLite, Path: "sales.sqlite"}
	if got := dataSourceName(dialects[DriverSQLite], cfg); got != "sales.sqlite" {
		t.Errorf("sqlite dsn = %q", got)
	}
}

func TestQuoteIdent(t *testing.T) {
	tests := map[string]string{
		"sales":        `"sales"`,
		"sub-category": `"sub-category"`,
		`we"ird`:       `"we""ird"`,
	}
	for in, want := range tests {
		if got := quoteIdent(in); got != want {
			t.Errorf("quoteIdent(%q) = %s, want %s", in, got, want)
		}
	}
}
