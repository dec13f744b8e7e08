// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

// Package main exports the persisted sales table to a Parquet file.
//
// The destination comes from PARQUET_PATH or the -out flag. When S3_BUCKET
// is set the finished file is also uploaded:
//
//	export -out exports/sales.parquet
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/revets/internal/config"
	"github.com/tomtom215/revets/internal/database"
	"github.com/tomtom215/revets/internal/export"
	"github.com/tomtom215/revets/internal/logging"
)

func main() {
	out := flag.String("out", "", "Parquet destination (overrides PARQUET_PATH)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *out != "" {
		cfg.Export.Path = *out
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

	res, err := run(ctx, cfg)
	if err != nil {
		stop()
		logging.Ctx(ctx).Fatal().Err(err).Msg("Export failed")
	}

	fmt.Printf("Data successfully exported to %s.\n", res.Path)
	if res.Location != "" {
		fmt.Printf("Uploaded to %s.\n", res.Location)
	}
}

func run(ctx context.Context, cfg *config.Config) (export.Result, error) {
	db, err := database.Open(ctx, &cfg.Database)
	if err != nil {
		return export.Result{}, err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Ctx(ctx).Error().Err(err).Msg("Error closing database")
		}
	}()

	var opts []export.Option
	if cfg.Export.S3.Bucket != "" {
		uploader, err := export.NewS3Uploader(ctx, cfg.Export.S3)
		if err != nil {
			return export.Result{}, err
		}
		opts = append(opts, export.WithUploader(uploader, cfg.Export.S3.Key))
	}

	return export.New(db, opts...).Export(ctx, cfg.Export.Path)
}
