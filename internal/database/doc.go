// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

/*
Package database persists the cleaned sales table and runs the aggregate queries.

Three stores are supported through database/sql, selected by database.driver:

  - duckdb (default): github.com/duckdb/duckdb-go/v2, a local file (sales.db)
  - sqlite: modernc.org/sqlite, a pure Go SQLite file
  - postgres: github.com/jackc/pgx/v5/stdlib, database.path is the DSN

SQL is built with github.com/Masterminds/squirrel (placeholders differ per
store) and results are scanned with github.com/jmoiron/sqlx.

# Snapshot Replace

ReplaceSales drops and recreates the table and inserts every row inside one
transaction. Running it twice leaves exactly the second table; a failure
leaves the previous snapshot untouched.

# Queries

	avg, err := db.AverageOrderValue(ctx)   // sql.NullFloat64, not Valid on an empty table
	months, err := db.RevenueByMonth(ctx)   // []MonthlyRevenue sorted by "YYYY-MM"

Querying before the table exists returns the driver's error wrapped with the
operation name.
*/
package database
