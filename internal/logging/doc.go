// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

// Package logging provides the zerolog-based structured logging used by every
// Revets binary.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("path", csvPath).Msg("Loading sales file")
//	logging.Ctx(ctx).Error().Err(err).Msg("Export failed")
//
// # Configuration
//
// Environment Variables (read by internal/config):
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # Sinks
//
// The recommendation endpoint writes an append-only request/response trail
// through a FileSink, separate from the operational log stream:
//
//	sink, err := logging.NewFileSink("service.log")
//	sink.Record().Interface("product_id", id).Msg("Received request")
//
// # slog
//
// NewSlogLogger bridges to log/slog for libraries that require it (sutureslog).
package logging
