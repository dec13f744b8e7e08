// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package sales

import "strings"

// NormalizeColumnName trims surrounding whitespace, lowercases, and replaces
// internal spaces with underscores. Normalizing a normalized name is a no-op.
//
//	NormalizeColumnName("  Order Date ") == "order_date"
func NormalizeColumnName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}
