// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package sales

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tomtom215/revets/internal/logging"
)

const utf8BOM = "\ufeff"

// ctxCheckInterval is how many records are read between context checks.
const ctxCheckInterval = 1000

// Options controls parsing.
type Options struct {
	// Delimiter separates fields. Zero means ','.
	Delimiter rune
	// Strict rejects header columns the schema does not declare.
	// When false they are kept as text columns after the schema columns.
	Strict bool
}

// DefaultOptions returns comma-separated, strict parsing.
func DefaultOptions() Options {
	return Options{Delimiter: ',', Strict: true}
}

// Load reads the delimited file at path and returns it cleaned against schema.
// The file is only read. A missing file yields an error matching fs.ErrNotExist.
func Load(ctx context.Context, path string, schema Schema, opts Options) (*Table, *Report, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, nil, fmt.Errorf("open sales file: %w", err)
	}
	defer func() {
		_ = f.Close() // read-only
	}()

	return Read(ctx, f, path, schema, opts)
}

// Read is Load for an already open reader. source names the input in errors and the report.
func Read(ctx context.Context, r io.Reader, source string, schema Schema, opts Options) (*Table, *Report, error) {
	if err := schema.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid schema: %w", err)
	}

	cr := csv.NewReader(r)
	cr.Comma = opts.Delimiter
	if cr.Comma == 0 {
		cr.Comma = ','
	}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%s: %w", source, ErrEmptyFile)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: read header: %w", source, err)
	}

	plan, err := planColumns(header, schema, opts.Strict)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", source, err)
	}

	report := newReport(source)
	report.MissingColumns = plan.missing
	report.ExtraColumns = plan.extra
	if len(plan.extra) > 0 {
		logging.Ctx(ctx).Warn().Strs("columns", plan.extra).Str("source", source).
			Msg("Keeping columns not declared in the schema as text")
	}

	table := &Table{Name: schema.Table, Columns: plan.columns}

	for line := 2; ; line++ {
		if line%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, nil, &ParseError{Row: csvErr.Line, Err: csvErr.Err}
			}
			return nil, nil, fmt.Errorf("%s: read line %d: %w", source, line, err)
		}

		row, err := plan.convertRecord(record, line)
		if err != nil {
			return nil, nil, err
		}
		table.Rows = append(table.Rows, row)
	}

	fillDefaults(table, schema, report)
	report.Rows = table.Len()

	return table, report, nil
}

// columnPlan maps header positions onto output columns.
type columnPlan struct {
	columns []Column
	// target[i] is the output column for header cell i.
	target  []int
	missing []string
	extra   []string
}

func planColumns(header []string, schema Schema, strict bool) (*columnPlan, error) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	names := make([]string, len(header))
	firstSeen := make(map[string]string, len(header))
	for i, raw := range header {
		name := NormalizeColumnName(raw)
		if name == "" {
			return nil, &ParseError{Row: 1, Err: fmt.Errorf("header cell %d is empty", i+1)}
		}
		if prev, dup := firstSeen[name]; dup {
			return nil, fmt.Errorf("%w: %q and %q both normalize to %q", ErrDuplicateColumn, prev, raw, name)
		}
		firstSeen[name] = raw
		names[i] = name
	}

	plan := &columnPlan{
		columns: make([]Column, 0, len(schema.Fields)),
		target:  make([]int, len(header)),
	}
	for _, f := range schema.Fields {
		plan.columns = append(plan.columns, Column{Name: f.Name, Type: f.Type})
	}

	var unknown []string
	present := make(map[string]bool, len(names))
	for i, name := range names {
		present[name] = true
		idx := -1
		for j, f := range schema.Fields {
			if f.Name == name {
				idx = j
				break
			}
		}
		if idx < 0 {
			unknown = append(unknown, name)
			idx = len(plan.columns)
			plan.columns = append(plan.columns, Column{Name: name, Type: TypeString})
		}
		plan.target[i] = idx
	}

	if strict && len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, strings.Join(unknown, ", "))
	}
	plan.extra = unknown

	var required []string
	for _, f := range schema.Fields {
		if present[f.Name] {
			continue
		}
		if f.Required {
			required = append(required, f.Name)
		} else {
			plan.missing = append(plan.missing, f.Name)
		}
	}
	if len(required) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(required, ", "))
	}

	return plan, nil
}

func (p *columnPlan) convertRecord(record []string, line int) ([]any, error) {
	row := make([]any, len(p.columns))
	for i, raw := range record {
		col := p.columns[p.target[i]]
		v, err := convert(col.Type, raw)
		if err != nil {
			return nil, &ParseError{Row: line, Column: col.Name, Value: raw, Err: err}
		}
		row[p.target[i]] = v
	}
	return row, nil
}

func fillDefaults(table *Table, schema Schema, report *Report) {
	for ci, col := range table.Columns {
		var def any
		if f, ok := schema.Lookup(col.Name); ok {
			def = f.Default
		}
		for _, row := range table.Rows {
			if row[ci] != nil {
				continue
			}
			if def != nil {
				row[ci] = def
				report.DefaultsFilled[col.Name]++
				continue
			}
			report.Nulls[col.Name]++
		}
	}
}
