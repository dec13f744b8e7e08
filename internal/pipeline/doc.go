// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

// Package pipeline runs the sales ETL: clean the CSV, replace the sales
// table, compute the aggregates. Stages run sequentially and every error is
// fatal to the run; nothing is retried.
package pipeline
