// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/tomtom215/revets/internal/metrics"
	"github.com/tomtom215/revets/internal/sales"
)

// MonthlyRevenue is the total of sales for one calendar month.
type MonthlyRevenue struct {
	Month string  `db:"month"` // YYYY-MM
	Total float64 `db:"total"`
}

// AverageOrderValue returns the mean of the sales column over all rows.
// For an empty table the result is not Valid.
func (db *DB) AverageOrderValue(ctx context.Context) (avg sql.NullFloat64, err error) {
	ctx, cancel := ensureContext(ctx, defaultQueryTimeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("average_order_value", db.dialect.name, time.Since(start), err)
	}()

	query, args, err := db.builder.
		Select(fmt.Sprintf("AVG(%s)", quoteIdent(sales.ColumnSales))).
		From(quoteIdent(db.table)).
		ToSql()
	if err != nil {
		return avg, fmt.Errorf("failed to build average order value query: %w", err)
	}

	if err = db.conn.GetContext(ctx, &avg, query, args...); err != nil {
		return avg, fmt.Errorf("average order value: %w", err)
	}
	return avg, nil
}

// RevenueByMonth returns the sum of sales per calendar month of order_date,
// ordered by month. Rows without an order_date are not counted.
func (db *DB) RevenueByMonth(ctx context.Context) (months []MonthlyRevenue, err error) {
	ctx, cancel := ensureContext(ctx, defaultQueryTimeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("revenue_by_month", db.dialect.name, time.Since(start), err)
	}()

	orderDate := quoteIdent(sales.ColumnOrderDate)
	month := db.dialect.monthExpr(orderDate)

	query, args, err := db.builder.
		Select(month+" AS month", fmt.Sprintf("COALESCE(SUM(%s), 0) AS total", quoteIdent(sales.ColumnSales))).
		From(quoteIdent(db.table)).
		Where(sq.NotEq{orderDate: nil}).
		GroupBy(month).
		OrderBy("month").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build revenue by month query: %w", err)
	}

	if err = db.conn.SelectContext(ctx, &months, query, args...); err != nil {
		return nil, fmt.Errorf("revenue by month: %w", err)
	}
	return months, nil
}

// CountSales returns the number of rows in the sales table.
func (db *DB) CountSales(ctx context.Context) (n int64, err error) {
	ctx, cancel := ensureContext(ctx, defaultQueryTimeout)
	defer cancel()

	query, args, err := db.builder.Select("COUNT(*)").From(quoteIdent(db.table)).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}
	if err = db.conn.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}

// QuerySales streams every row of the sales table. The caller closes the rows.
// ctx must stay alive while the rows are read.
func (db *DB) QuerySales(ctx context.Context) (*sql.Rows, error) {
	query, args, err := db.builder.Select("*").From(quoteIdent(db.table)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("read sales table: %w", err)
	}
	return rows, nil
}
