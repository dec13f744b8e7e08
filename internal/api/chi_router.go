// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/revets/internal/cache"
	"github.com/tomtom215/revets/internal/middleware"
)

// Router owns the route table and the middleware around it.
type Router struct {
	handler       *Handler
	cache         *cache.Cache
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. respCache may be nil to disable response caching.
func NewRouter(handler *Handler, respCache *cache.Cache, mwConfig *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		cache:         respCache,
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Applied to all routes, in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", router.handler.HealthLive)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		if router.cache != nil {
			r.Use(middleware.ResponseCache(router.cache))
		}

		r.Post("/recommend", router.handler.Recommend)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "Not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	return r
}
