// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package pipeline

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/revets/internal/config"
	"github.com/tomtom215/revets/internal/database"
	"github.com/tomtom215/revets/internal/sales"
)

const ordersCSV = `Row ID,Order ID,Order Date,Ship Date,Postal Code,Sales,Profit
1,CA-1,08/11/2016,11/11/2016,42420,261.96,41.91
2,CA-2,08/11/2016,11/11/2016,,731.94,
3,CA-3,12/06/2016,16/06/2016,90036,14.62,6.87
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func openDB(t *testing.T, driver string) *database.DB {
	t.Helper()
	db, err := database.Open(context.Background(), &config.DatabaseConfig{
		Driver:    driver,
		Path:      filepath.Join(t.TempDir(), "sales.db"),
		Table:     "sales",
		Threads:   1,
		BatchSize: 2,
	})
	if err != nil {
		t.Fatalf("open %s: %v", driver, err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestRun(t *testing.T) {
	for _, driver := range []string{database.DriverDuckDB, database.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			db := openDB(t, driver)
			p, err := New(db, sales.DefaultSchema(), sales.DefaultOptions())
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			summary, err := p.Run(context.Background(), writeFile(t, "sales.csv", ordersCSV))
			if err != nil {
				t.Fatalf("Run: %v", err)
			}

			if summary.Report.Rows != 3 {
				t.Errorf("rows = %d, want 3", summary.Report.Rows)
			}
			if summary.Report.DefaultsFilled[sales.ColumnPostalCode] != 1 || summary.Report.DefaultsFilled[sales.ColumnProfit] != 1 {
				t.Errorf("defaults filled = %v", summary.Report.DefaultsFilled)
			}

			if !summary.AverageOrderValue.Valid || !approx(summary.AverageOrderValue.Float64, 1008.52/3) {
				t.Errorf("average order value = %+v", summary.AverageOrderValue)
			}

			if len(summary.RevenueByMonth) != 2 {
				t.Fatalf("months = %+v, want 2 entries", summary.RevenueByMonth)
			}
			june, nov := summary.RevenueByMonth[0], summary.RevenueByMonth[1]
			if june.Month != "2016-06" || !approx(june.Total, 14.62) {
				t.Errorf("first month = %+v, want 2016-06 / 14.62", june)
			}
			if nov.Month != "2016-11" || !approx(nov.Total, 993.9) {
				t.Errorf("second month = %+v, want 2016-11 / 993.9", nov)
			}

			n, err := db.CountSales(context.Background())
			if err != nil || n != 3 {
				t.Errorf("CountSales() = %d, %v; want 3", n, err)
			}
		})
	}
}

func TestRunFailedLoadKeepsPreviousSnapshot(t *testing.T) {
	db := openDB(t, database.DriverSQLite)
	p, err := New(db, sales.DefaultSchema(), sales.DefaultOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := p.Run(context.Background(), writeFile(t, "good.csv", ordersCSV)); err != nil {
		t.Fatalf("first run: %v", err)
	}

	_, err = p.Run(context.Background(), writeFile(t, "bad.csv", "Order ID,Sales\nCA-9,1.0\n"))
	if !errors.Is(err, sales.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}

	n, err := db.CountSales(context.Background())
	if err != nil || n != 3 {
		t.Errorf("CountSales() = %d, %v; previous snapshot should be intact", n, err)
	}
}

func TestRunMissingFile(t *testing.T) {
	p, err := New(openDB(t, database.DriverSQLite), sales.DefaultSchema(), sales.DefaultOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = p.Run(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestNewRejectsInvalidSchema(t *testing.T) {
	_, err := New(nil, sales.Schema{Table: "sales"}, sales.DefaultOptions())
	if err == nil {
		t.Fatal("expected error for schema without fields")
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSummary(&buf, &Summary{
		AverageOrderValue: sql.NullFloat64{Float64: 229.858, Valid: true},
		RevenueByMonth: []database.MonthlyRevenue{
			{Month: "2017-01", Total: 14236.895},
			{Month: "2017-02", Total: 4519.892},
		},
	})
	if err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}

	want := "Average Order Value: 229.858\n" +
		"Average Revenue per Month:\n" +
		"2017-01: 14236.895\n" +
		"2017-02: 4519.892\n"
	if buf.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteSummaryEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, &Summary{}); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}

	want := "Average Order Value: N/A\nAverage Revenue per Month:\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
