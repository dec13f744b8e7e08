// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of sales table operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "driver"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed sales table operations",
		},
		[]string{"operation", "driver", "error_type"},
	)

	DBRowsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_rows_written_total",
			Help: "Total number of rows written by snapshot replaces",
		},
		[]string{"driver"},
	)

	// Pipeline Metrics
	PipelineRowsLoaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_rows_loaded_total",
			Help: "Total number of cleaned rows read from sales files",
		},
	)

	PipelineDefaultsFilled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_defaults_filled_total",
			Help: "Total number of null cells replaced by a column default",
		},
		[]string{"column"},
	)

	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
		[]string{"stage"}, // "load", "persist", "query"
	)

	// Export Metrics
	ExportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "export_duration_seconds",
			Help:    "Duration of Parquet exports in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
	)

	ExportBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "export_bytes_total",
			Help: "Total bytes of Parquet written",
		},
	)

	ExportUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "export_uploads_total",
			Help: "Total number of object storage uploads by result",
		},
		[]string{"result"}, // "success", "error"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Response Cache Metrics
	ResponseCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "response_cache_hits_total",
			Help: "Total number of responses replayed from the cache",
		},
	)

	ResponseCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "response_cache_misses_total",
			Help: "Total number of cacheable requests that reached the handler",
		},
	)

	ResponseCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "response_cache_entries",
			Help: "Current number of cached responses",
		},
	)

	ResponseCacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "response_cache_evictions_total",
			Help: "Total number of cache entries removed",
		},
		[]string{"reason"}, // "expired", "capacity"
	)

	// Recommendation Metrics
	RecommendationsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of recommendation responses computed by the handler",
		},
	)
)

// RecordDBQuery records a database operation metric
func RecordDBQuery(operation, driver string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, driver).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, driver, errorType).Inc()
	}
}

// RecordPipelineLoad records the outcome of a cleaning pass.
func RecordPipelineLoad(rows int, defaultsFilled map[string]int) {
	PipelineRowsLoaded.Add(float64(rows))
	for column, n := range defaultsFilled {
		PipelineDefaultsFilled.WithLabelValues(column).Add(float64(n))
	}
}

// RecordPipelineStage records how long a pipeline stage took.
func RecordPipelineStage(stage string, duration time.Duration) {
	PipelineStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordExport records a finished Parquet export.
func RecordExport(bytes int64, duration time.Duration) {
	ExportDuration.Observe(duration.Seconds())
	ExportBytes.Add(float64(bytes))
}

// RecordUpload records an object storage upload attempt.
func RecordUpload(err error) {
	if err != nil {
		ExportUploads.WithLabelValues("error").Inc()
		return
	}
	ExportUploads.WithLabelValues("success").Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheLookup records a response cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		ResponseCacheHits.Inc()
		return
	}
	ResponseCacheMisses.Inc()
}

// RecordCacheEviction records removed cache entries.
func RecordCacheEviction(reason string, n int) {
	if n > 0 {
		ResponseCacheEvictions.WithLabelValues(reason).Add(float64(n))
	}
}

// SetCacheEntries updates the cache size gauge.
func SetCacheEntries(n int) {
	ResponseCacheEntries.Set(float64(n))
}
