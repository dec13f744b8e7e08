// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

// Package testinfra starts throwaway containers for integration tests.
//
// Everything here is behind the integration build tag and needs Docker:
//
//	go test -tags integration ./internal/database/... ./internal/export/...
//
// # PostgreSQL
//
//	pg := testinfra.StartPostgres(t)
//	db, err := database.Open(ctx, &config.DatabaseConfig{
//	    Driver: "postgres",
//	    Path:   pg.DSN,
//	    Table:  "sales",
//	})
//
// # MinIO
//
// MinIOContainer serves the S3 API with static credentials and a bucket
// created up front, so exports can be uploaded without AWS.
//
// Tests are skipped when the Docker daemon is not reachable.
package testinfra
