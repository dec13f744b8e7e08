// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package database

import (
	"context"
	"math"
	"testing"
	"time"
)

func TestAverageOrderValue(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db *DB) {
		ctx := context.Background()
		checkNoError(t, db.ReplaceSales(ctx, salesTable(
			row("A", date(2023, time.January, 1), 10),
			row("B", date(2023, time.January, 2), 20),
			row("C", date(2023, time.February, 3), 30),
		)))

		avg, err := db.AverageOrderValue(ctx)
		checkNoError(t, err)
		if !avg.Valid || math.Abs(avg.Float64-20) > 1e-9 {
			t.Errorf("AverageOrderValue() = %+v, want 20", avg)
		}
	})
}

func TestAverageOrderValueEmptyTable(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db *DB) {
		ctx := context.Background()
		checkNoError(t, db.ReplaceSales(ctx, salesTable()))

		avg, err := db.AverageOrderValue(ctx)
		checkNoError(t, err)
		if avg.Valid {
			t.Errorf("AverageOrderValue() on empty table = %v, want NULL", avg.Float64)
		}
	})
}

func TestQueriesMissingTable(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db *DB) {
		ctx := context.Background()

		_, err := db.AverageOrderValue(ctx)
		checkError(t, err)

		_, err = db.RevenueByMonth(ctx)
		checkError(t, err)

		_, err = db.QuerySales(ctx)
		checkError(t, err)
	})
}

func TestRevenueByMonth(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db *DB) {
		ctx := context.Background()
		checkNoError(t, db.ReplaceSales(ctx, salesTable(
			row("C", date(2023, time.February, 1), 7),
			row("A", date(2023, time.January, 5), 10),
			row("B", date(2023, time.January, 20), 5),
			row("D", nil, 1000),
			row("E", date(2022, time.December, 31), 2.5),
		)))

		got, err := db.RevenueByMonth(ctx)
		checkNoError(t, err)

		want := []MonthlyRevenue{
			{Month: "2022-12", Total: 2.5},
			{Month: "2023-01", Total: 15},
			{Month: "2023-02", Total: 7},
		}
		if len(got) != len(want) {
			t.Fatalf("RevenueByMonth() = %+v, want %+v", got, want)
		}
		for i := range want {
			if got[i].Month != want[i].Month || math.Abs(got[i].Total-want[i].Total) > 1e-9 {
				t.Errorf("month %d = %+v, want %+v", i, got[i], want[i])
			}
		}
	})
}

func TestRevenueByMonthEmpty(t *testing.T) {
	forEachDriver(t, func(t *testing.T, db *DB) {
		ctx := context.Background()
		checkNoError(t, db.ReplaceSales(ctx, salesTable()))

		got, err := db.RevenueByMonth(ctx)
		checkNoError(t, err)
		if len(got) != 0 {
			t.Errorf("RevenueByMonth() on empty table = %+v, want none", got)
		}
	})
}

func TestEnsureContext(t *testing.T) {
	ctx, cancel := ensureContext(context.Background(), time.Minute)
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Error("expected a deadline to be added")
	}

	parent, parentCancel := context.WithTimeout(context.Background(), time.Second)
	defer parentCancel()
	ctx2, cancel2 := ensureContext(parent, time.Hour)
	defer cancel2()
	if ctx2 != parent {
		t.Error("expected the existing deadline to be kept")
	}
}
