// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package sales

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var errUnrecognizedDate = errors.New("unrecognized date (expected day-first DD/MM/YYYY or ISO YYYY-MM-DD)")

// dateLayouts are tried in order. Single-digit day and month tokens also
// accept two digits, so "2/1/2006" matches both 3/4/2024 and 03/04/2024.
// ISO layouts come first: a year-first value can never satisfy a day-first layout.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"2/1/2006",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
	"2-1-2006",
	"2-1-2006 15:04",
	"2-1-2006 15:04:05",
	"2.1.2006",
	"2.1.2006 15:04",
	"2.1.2006 15:04:05",
}

// ParseDate parses s as a calendar date, reading ambiguous numeric dates
// day-first (03/04/2024 is 3 April 2024). Any time of day is dropped.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, errUnrecognizedDate
}

// convert turns a raw cell into the Go value for t. Empty cells are null (nil).
// String cells are kept verbatim; other types ignore surrounding whitespace.
func convert(t FieldType, raw string) (any, error) {
	if t == TypeString {
		if raw == "" {
			return nil, nil
		}
		return raw, nil
	}

	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}

	switch t {
	case TypeFloat:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Unwrap(err)
		}
		return v, nil
	case TypeInt:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errors.Unwrap(err)
		}
		return v, nil
	case TypeDate:
		return ParseDate(s)
	default:
		return nil, fmt.Errorf("unsupported field type %s", t)
	}
}
