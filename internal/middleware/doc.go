// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

/*
Package middleware provides HTTP middleware used by the API router.

Key Components:

  - RequestID: UUID-based request tracking; also seeds logging context
  - PrometheusMetrics: request count, latency and in-flight gauge
  - ResponseCache: replays identical successful requests from a cache.Cache

All middleware has the chi signature func(http.Handler) http.Handler.

Middleware Stack:

	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.With(middleware.ResponseCache(c)).Post("/recommend", h.Recommend)

ResponseCache keys on method, path, sorted query string and a SHA-256 of the
body. A cache hit never reaches the wrapped handler, so anything the handler
does per request (validation, the request log) is skipped for hits.
*/
package middleware
