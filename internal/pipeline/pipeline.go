// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/revets/internal/database"
	"github.com/tomtom215/revets/internal/logging"
	"github.com/tomtom215/revets/internal/metrics"
	"github.com/tomtom215/revets/internal/sales"
)

// Stage names used for metrics and logs.
const (
	StageLoad    = "load"
	StagePersist = "persist"
	StageQuery   = "query"
)

// Summary is the outcome of one ingest run.
type Summary struct {
	Report            *sales.Report
	AverageOrderValue sql.NullFloat64
	RevenueByMonth    []database.MonthlyRevenue
	Duration          time.Duration
}

// Pipeline runs load, persist and query against one open store.
type Pipeline struct {
	db     *database.DB
	schema sales.Schema
	opts   sales.Options
}

// New creates a pipeline. The schema is validated up front so a bad
// descriptor fails before any file is read.
func New(db *database.DB, schema sales.Schema, opts sales.Options) (*Pipeline, error) {
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return &Pipeline{db: db, schema: schema, opts: opts}, nil
}

// Run cleans csvPath, replaces the sales table with it and computes both
// aggregates. Any error aborts the run; a failed persist leaves the previous
// snapshot in place.
func (p *Pipeline) Run(ctx context.Context, csvPath string) (*Summary, error) {
	start := time.Now()

	report, err := p.Ingest(ctx, csvPath)
	if err != nil {
		return nil, err
	}

	avg, months, err := p.Aggregates(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Report:            report,
		AverageOrderValue: avg,
		RevenueByMonth:    months,
		Duration:          time.Since(start),
	}

	logging.Ctx(ctx).Info().
		Str("source", csvPath).
		Int("rows", report.Rows).
		Int("months", len(months)).
		Dur("duration", summary.Duration).
		Msg("Pipeline run complete")

	return summary, nil
}

// Ingest loads and cleans csvPath and replaces the sales table with the result.
func (p *Pipeline) Ingest(ctx context.Context, csvPath string) (*sales.Report, error) {
	stageStart := time.Now()
	table, report, err := sales.Load(ctx, csvPath, p.schema, p.opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", csvPath, err)
	}
	metrics.RecordPipelineStage(StageLoad, time.Since(stageStart))
	metrics.RecordPipelineLoad(report.Rows, report.DefaultsFilled)

	logging.Ctx(ctx).Info().
		Str("source", csvPath).
		Int("rows", report.Rows).
		Int("defaults_filled", report.TotalDefaultsFilled()).
		Strs("missing_columns", report.MissingColumns).
		Strs("extra_columns", report.ExtraColumns).
		Msg("Sales file cleaned")

	stageStart = time.Now()
	if err := p.db.ReplaceSales(ctx, table); err != nil {
		return nil, fmt.Errorf("persist: %w", err)
	}
	metrics.RecordPipelineStage(StagePersist, time.Since(stageStart))

	return report, nil
}

// Aggregates computes the average order value and revenue per month of the
// current sales table.
func (p *Pipeline) Aggregates(ctx context.Context) (sql.NullFloat64, []database.MonthlyRevenue, error) {
	stageStart := time.Now()

	avg, err := p.db.AverageOrderValue(ctx)
	if err != nil {
		return avg, nil, fmt.Errorf("query: %w", err)
	}
	months, err := p.db.RevenueByMonth(ctx)
	if err != nil {
		return avg, nil, fmt.Errorf("query: %w", err)
	}

	metrics.RecordPipelineStage(StageQuery, time.Since(stageStart))
	return avg, months, nil
}
