// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package pipeline

import (
	"bufio"
	"database/sql"
	"fmt"
	"io"
	"strconv"
)

// NoValue is printed for an aggregate over an empty table.
const NoValue = "N/A"

// WriteSummary prints the aggregates in the ingest command's report format:
//
//	Average Order Value: 229.858
//	Average Revenue per Month:
//	2017-01: 14236.895
func WriteSummary(w io.Writer, s *Summary) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Average Order Value: %s\n", formatNullFloat(s.AverageOrderValue))
	fmt.Fprintln(bw, "Average Revenue per Month:")
	for _, m := range s.RevenueByMonth {
		fmt.Fprintf(bw, "%s: %s\n", m.Month, formatFloat(m.Total))
	}

	return bw.Flush()
}

func formatNullFloat(v sql.NullFloat64) string {
	if !v.Valid {
		return NoValue
	}
	return formatFloat(v.Float64)
}

// formatFloat prints the shortest decimal that round-trips.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
