// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/revets/internal/config"
	"github.com/tomtom215/revets/internal/sales"
)

// postgresDSNEnv enables the postgres variants of the store tests.
const postgresDSNEnv = "REVETS_TEST_POSTGRES_DSN"

// testDrivers returns the drivers that can run in this environment.
// DuckDB and SQLite are in-process; postgres needs a DSN.
func testDrivers() []string {
	drivers := []string{DriverDuckDB, DriverSQLite}
	if os.Getenv(postgresDSNEnv) != "" {
		drivers = append(drivers, DriverPostgres)
	}
	return drivers
}

func testConfig(t *testing.T, driver string) *config.DatabaseConfig {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Driver:    driver,
		Table:     "sales",
		Threads:   1,
		BatchSize: 2,
	}
	switch driver {
	case DriverDuckDB:
		cfg.Path = filepath.Join(t.TempDir(), "sales.db")
		cfg.MaxMemory = "256MB"
	case DriverSQLite:
		cfg.Path = filepath.Join(t.TempDir(), "sales.sqlite")
	case DriverPostgres:
		cfg.Path = os.Getenv(postgresDSNEnv)
	}
	return cfg
}

func openTestDB(t *testing.T, driver string) *DB {
	t.Helper()

	db, err := Open(context.Background(), testConfig(t, driver))
	checkNoError(t, err)
	t.Cleanup(func() {
		if driver == DriverPostgres {
			_, _ = db.Conn().Exec(`DROP TABLE IF EXISTS "sales"`)
		}
		_ = db.Close()
	})
	return db
}

func forEachDriver(t *testing.T, fn func(t *testing.T, db *DB)) {
	t.Helper()
	for _, driver := range testDrivers() {
		t.Run(driver, func(t *testing.T) {
			fn(t, openTestDB(t, driver))
		})
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// salesTable builds a table with the columns the queries rely on.
func salesTable(rows ...[]any) *sales.Table {
	return &sales.Table{
		Name: "sales",
		Columns: []sales.Column{
			{Name: "order_id", Type: sales.TypeString},
			{Name: sales.ColumnOrderDate, Type: sales.TypeDate},
			{Name: sales.ColumnPostalCode, Type: sales.TypeString},
			{Name: sales.ColumnSales, Type: sales.TypeFloat},
			{Name: "quantity", Type: sales.TypeInt},
			{Name: sales.ColumnProfit, Type: sales.TypeFloat},
		},
		Rows: rows,
	}
}

func row(id string, orderDate any, sale float64) []any {
	return []any{id, orderDate, "Unknown", sale, int64(1), 0.0}
}

func checkNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func checkError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
