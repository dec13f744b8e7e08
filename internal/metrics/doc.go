// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

/*
Package metrics defines the Prometheus metrics for Revets.

All collectors are registered on the default registry through promauto, so the
server's GET /metrics endpoint (promhttp.Handler) exposes them without further
wiring. The pipeline CLIs record into the same collectors; they are simply
never scraped.

Database:
  - db_query_duration_seconds{operation, driver}
  - db_query_errors_total{operation, driver, error_type}
  - db_rows_written_total{driver}

Pipeline and export:
  - pipeline_rows_loaded_total
  - pipeline_defaults_filled_total{column}
  - pipeline_stage_duration_seconds{stage}
  - export_duration_seconds, export_bytes_total
  - export_uploads_total{result}

HTTP and cache:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}
  - response_cache_hits_total, response_cache_misses_total
  - response_cache_entries
  - response_cache_evictions_total{reason}
  - recommendations_served_total
*/
package metrics
