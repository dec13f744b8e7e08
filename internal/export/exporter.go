// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/revets/internal/database"
	"github.com/tomtom215/revets/internal/logging"
	"github.com/tomtom215/revets/internal/metrics"
)

// Uploader copies a finished export to remote storage and returns its location.
type Uploader interface {
	Upload(ctx context.Context, path, key string) (string, error)
}

// Result describes a finished export.
type Result struct {
	Path     string
	Rows     int64
	Bytes    int64
	Duration time.Duration
	// Location is the remote object URI when an uploader is configured.
	Location string
}

// Exporter writes the whole sales table to a Parquet file.
type Exporter struct {
	db       *database.DB
	uploader Uploader
	key      string
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithUploader uploads each export under key. An empty key uses the file's base name.
func WithUploader(u Uploader, key string) Option {
	return func(e *Exporter) {
		e.uploader = u
		e.key = key
	}
}

// New returns an Exporter reading from db.
func New(db *database.DB, opts ...Option) *Exporter {
	e := &Exporter{db: db}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export writes the sales table to dest as Snappy-compressed Parquet,
// replacing any existing file. The file is written next to dest under a
// temporary name and renamed into place, so dest is never half-written.
// The directory of dest must already exist.
func (e *Exporter) Export(ctx context.Context, dest string) (res Result, err error) {
	start := time.Now()
	res.Path = dest

	tmp := filepath.Join(filepath.Dir(dest), fmt.Sprintf(".%s.%s.tmp", filepath.Base(dest), uuid.NewString()[:8]))
	defer func() {
		if err != nil {
			_ = os.Remove(tmp) // may not exist
		}
	}()

	if e.db.Driver() == database.DriverDuckDB {
		res.Rows, err = e.copyDirect(ctx, tmp)
	} else {
		res.Rows, err = e.copyStaged(ctx, tmp)
	}
	if err != nil {
		return res, err
	}

	if err = os.Rename(tmp, dest); err != nil {
		return res, fmt.Errorf("failed to move export into place: %w", err)
	}

	info, err := os.Stat(dest)
	if err != nil {
		return res, fmt.Errorf("failed to stat export: %w", err)
	}
	res.Bytes = info.Size()
	res.Duration = time.Since(start)
	metrics.RecordExport(res.Bytes, res.Duration)

	logging.Ctx(ctx).Info().
		Str("path", dest).
		Str("driver", e.db.Driver()).
		Int64("rows", res.Rows).
		Int64("bytes", res.Bytes).
		Dur("duration", res.Duration).
		Msg("Sales table exported to Parquet")

	if e.uploader != nil {
		key := e.key
		if key == "" {
			key = filepath.Base(dest)
		}
		res.Location, err = e.uploader.Upload(ctx, dest, key)
		metrics.RecordUpload(err)
		if err != nil {
			return res, fmt.Errorf("failed to upload export: %w", err)
		}
		logging.Ctx(ctx).Info().Str("location", res.Location).Msg("Export uploaded")
	}

	return res, nil
}

// copyDirect lets DuckDB write the Parquet file from the persisted table.
func (e *Exporter) copyDirect(ctx context.Context, path string) (int64, error) {
	rows, err := e.db.CountSales(ctx)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("COPY (SELECT * FROM %s) TO %s (%s)", quoteIdent(e.db.Table()), quoteLiteral(path), parquetOptions)
	if _, err := e.db.Conn().ExecContext(ctx, query); err != nil {
		return 0, fmt.Errorf("failed to export Parquet: %w", err)
	}
	return rows, nil
}

// parquetOptions is fixed: the export exposes no format knobs.
const parquetOptions = "FORMAT PARQUET, COMPRESSION 'SNAPPY'"

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
