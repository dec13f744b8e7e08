// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/revets/internal/metrics"
)

func TestPrometheusMetrics(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		handler    http.HandlerFunc
		wantStatus string
	}{
		{
			name:   "explicit status",
			method: http.MethodPost,
			path:   "/metrics-test/explicit",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.WriteHeader(http.StatusInternalServerError) // ignored by net/http
			},
			wantStatus: "400",
		},
		{
			name:   "implicit 200",
			method: http.MethodGet,
			path:   "/metrics-test/implicit",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("OK"))
			},
			wantStatus: "200",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := metrics.APIRequestsTotal.WithLabelValues(tt.method, tt.path, tt.wantStatus)
			before := testutil.ToFloat64(counter)

			rec := httptest.NewRecorder()
			PrometheusMetrics(tt.handler).ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("request counter delta = %v, want 1", got)
			}
		})
	}
}

func TestPrometheusMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/metrics-test/items/{id}", func(w http.ResponseWriter, r *http.Request) {})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test/items/{id}", "200")
	before := testutil.ToFloat64(counter)

	for _, path := range []string{"/metrics-test/items/1", "/metrics-test/items/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("route pattern counter delta = %v, want 2", got)
	}
}

func TestPrometheusMetricsActiveRequests(t *testing.T) {
	var during float64
	handler := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(metrics.APIActiveRequests)
	}))

	before := testutil.ToFloat64(metrics.APIActiveRequests)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/active", nil))

	if during < before+1 {
		t.Errorf("active requests during handler = %v, want at least %v", during, before+1)
	}
}
