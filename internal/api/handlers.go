// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package api

import (
	"time"

	"github.com/tomtom215/revets/internal/logging"
	"github.com/tomtom215/revets/internal/recommend"
)

// Handler contains dependencies for API handlers.
//
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_recommend.go: POST /recommend
//   - handlers_health.go: health probes
type Handler struct {
	engine    *recommend.Engine
	sink      *logging.FileSink
	startTime time.Time
}

// NewHandler creates a handler. sink receives one record per request and
// one per response; it may be nil, in which case nothing is recorded.
func NewHandler(engine *recommend.Engine, sink *logging.FileSink) *Handler {
	return &Handler{
		engine:    engine,
		sink:      sink,
		startTime: time.Now(),
	}
}
