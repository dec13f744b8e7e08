// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

/*
Package api provides the HTTP layer of the recommendation service.

Routes:

  - POST /recommend: returns related product IDs for {"product_id": ...}
  - GET /health/live: liveness probe
  - GET /metrics: Prometheus exposition

Responses are plain JSON. Errors use the shape {"error": "<message>"}.

The Router wires chi with request IDs, panic recovery, CORS (go-chi/cors),
per-IP rate limiting (go-chi/httprate) and Prometheus instrumentation.
POST /recommend is additionally wrapped in the response cache, so an
identical request inside the cache TTL is replayed without reaching the
Handler and is therefore not written to the request log.

Usage Example:

	engine, _ := recommend.NewEngine(cfg.Recommend.ProductIDs)
	sink, _ := logging.NewFileSink(cfg.Recommend.LogPath)
	respCache := cache.New(cfg.Cache.TTL, cfg.Cache.MaxEntries)

	handler := api.NewHandler(engine, sink)
	router := api.NewRouter(handler, respCache, api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())
*/
package api
