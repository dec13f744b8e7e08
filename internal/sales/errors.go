// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package sales

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyFile is returned when the file has no header row.
	ErrEmptyFile = errors.New("sales file is empty")
	// ErrMissingColumn is returned when a required schema column is absent from the header.
	ErrMissingColumn = errors.New("required column missing")
	// ErrUnknownColumn is returned in strict mode for header columns the schema does not declare.
	ErrUnknownColumn = errors.New("column not in schema")
	// ErrDuplicateColumn is returned when two header columns normalize to the same name.
	ErrDuplicateColumn = errors.New("duplicate column")
)

// ParseError reports a cell or record that could not be read.
// Row is the 1-based line number in the source file (the header is line 1).
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("line %d, column %s: cannot parse %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
