// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

// Package recommend produces related-product recommendations.
//
// The engine currently returns a configured, fixed list of product IDs for
// every valid request; the product identifier is echoed back unchanged and
// never interpreted. Request validation lives here so the HTTP layer and any
// other caller reject the same inputs.
//
// # Usage
//
//	engine, err := recommend.NewEngine([]int{1, 2, 3})
//	resp, err := engine.Recommend(ctx, recommend.Request{ProductID: id})
//	if errors.Is(err, recommend.ErrProductIDRequired) {
//	    // 400
//	}
//
// # Thread Safety
//
// An Engine is immutable after construction and safe for concurrent use.
package recommend
