// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

// Package main runs one ingest: clean the configured sales CSV, replace the
// sales table with it, then print the average order value and revenue per
// month to stdout.
//
// The file, store and table come from configuration (CSV_PATH, DB_DRIVER,
// DB_PATH, DB_TABLE). A flag overrides CSV_PATH:
//
//	ingest -csv data/orders.csv
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/revets/internal/config"
	"github.com/tomtom215/revets/internal/database"
	"github.com/tomtom215/revets/internal/logging"
	"github.com/tomtom215/revets/internal/pipeline"
	"github.com/tomtom215/revets/internal/sales"
)

func main() {
	csvPath := flag.String("csv", "", "sales CSV to ingest (overrides CSV_PATH)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *csvPath != "" {
		cfg.Pipeline.CSVPath = *csvPath
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.ContextWithNewCorrelationID(ctx)

	if err := run(ctx, cfg); err != nil {
		stop()
		logging.Ctx(ctx).Fatal().Err(err).Msg("Ingest failed")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	db, err := database.Open(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Ctx(ctx).Error().Err(err).Msg("Error closing database")
		}
	}()

	schema := sales.DefaultSchema()
	schema.Table = cfg.Database.Table

	p, err := pipeline.New(db, schema, sales.Options{
		Delimiter: []rune(cfg.Pipeline.Delimiter)[0],
		Strict:    cfg.Pipeline.StrictSchema,
	})
	if err != nil {
		return err
	}

	summary, err := p.Run(ctx, cfg.Pipeline.CSVPath)
	if err != nil {
		return err
	}

	return pipeline.WriteSummary(os.Stdout, summary)
}
