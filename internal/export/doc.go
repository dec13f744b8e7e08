// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

// Package export writes the persisted sales table to a Parquet file.
//
// DuckDB writes the file in every case: for the duckdb store the table is
// copied directly; for sqlite and postgres the rows are first staged in an
// in-memory DuckDB table. Compression is fixed to Snappy. When an Uploader is
// configured (see S3Uploader) the finished file is also pushed to object storage.
package export
