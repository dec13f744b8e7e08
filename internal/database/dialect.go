// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package database

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/tomtom215/revets/internal/sales"
)

// Supported values of database.driver.
const (
	DriverDuckDB   = "duckdb"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// dialect captures what differs between the supported stores.
type dialect struct {
	name        string
	sqlDriver   string
	placeholder sq.PlaceholderFormat
	columnTypes map[sales.FieldType]string
	// monthExpr renders a YYYY-MM string for a date column expression.
	monthExpr func(column string) string
	// bindDate converts a date before it is sent to the driver. nil sends time.Time as-is.
	bindDate func(time.Time) any
	// fileBacked stores use database.path as a filesystem path.
	fileBacked bool
}

var dialects = map[string]dialect{
	DriverDuckDB: {
		name:        DriverDuckDB,
		sqlDriver:   "duckdb",
		placeholder: sq.Question,
		columnTypes: map[sales.FieldType]string{
			sales.TypeString: "VARCHAR",
			sales.TypeFloat:  "DOUBLE",
			sales.TypeInt:    "BIGINT",
			sales.TypeDate:   "DATE",
		},
		monthExpr: func(column string) string {
			return fmt.Sprintf("strftime(%s, '%%Y-%%m')", column)
		},
		fileBacked: true,
	},
	DriverSQLite: {
		name:        DriverSQLite,
		sqlDriver:   "sqlite",
		placeholder: sq.Question,
		columnTypes: map[sales.FieldType]string{
			sales.TypeString: "TEXT",
			sales.TypeFloat:  "REAL",
			sales.TypeInt:    "INTEGER",
			sales.TypeDate:   "DATE",
		},
		monthExpr: func(column string) string {
			return fmt.Sprintf("strftime('%%Y-%%m', %s)", column)
		},
		// SQLite has no date type; ISO text keeps strftime and ordering working.
		bindDate: func(t time.Time) any {
			return t.Format(time.DateOnly)
		},
		fileBacked: true,
	},
	DriverPostgres: {
		name:        DriverPostgres,
		sqlDriver:   "pgx",
		placeholder: sq.Dollar,
		columnTypes: map[sales.FieldType]string{
			sales.TypeString: "TEXT",
			sales.TypeFloat:  "DOUBLE PRECISION",
			sales.TypeInt:    "BIGINT",
			sales.TypeDate:   "DATE",
		},
		monthExpr: func(column string) string {
			return fmt.Sprintf("to_char(%s, 'YYYY-MM')", column)
		},
	},
}

func lookupDialect(driver string) (dialect, error) {
	d, ok := dialects[strings.ToLower(driver)]
	if !ok {
		return dialect{}, fmt.Errorf("unsupported database driver %q (want duckdb, sqlite or postgres)", driver)
	}
	return d, nil
}

// columnType returns the SQL type for a logical field type.
func (d dialect) columnType(t sales.FieldType) (string, error) {
	sqlType, ok := d.columnTypes[t]
	if !ok {
		return "", fmt.Errorf("%s: no column type for %s", d.name, t)
	}
	return sqlType, nil
}

// bind converts a cleaned value into a driver argument.
func (d dialect) bind(v any) any {
	if t, ok := v.(time.Time); ok && d.bindDate != nil {
		return d.bindDate(t)
	}
	return v
}

// quoteIdent double-quotes an identifier. All three stores accept ANSI quoting.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
