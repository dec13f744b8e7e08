// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/revets/internal/logging"
	"github.com/tomtom215/revets/internal/metrics"
	"github.com/tomtom215/revets/internal/validation"
)

// DefaultProductIDs is the list served when none is configured.
var DefaultProductIDs = []int{1, 2, 3}

// Engine answers recommendation requests.
type Engine struct {
	productIDs []int
}

// NewEngine creates an engine that recommends productIDs, in order.
func NewEngine(productIDs []int) (*Engine, error) {
	if len(productIDs) == 0 {
		return nil, errors.New("recommend: at least one product ID must be configured")
	}
	ids := make([]int, len(productIDs))
	copy(ids, productIDs)
	return &Engine{productIDs: ids}, nil
}

// Recommend validates req and returns the recommendation for it.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	if verr := validation.ValidateStruct(&req); verr != nil {
		if verr.HasTag("truthy") {
			return nil, ErrProductIDRequired
		}
		return nil, fmt.Errorf("recommend: %w", verr)
	}

	ids := make([]int, len(e.productIDs))
	copy(ids, e.productIDs)

	metrics.RecommendationsServed.Inc()
	logging.Ctx(ctx).Debug().
		Interface("product_id", req.ProductID).
		Ints("recommended_product_ids", ids).
		Msg("Recommendation computed")

	return &Response{
		ProductID:             req.ProductID,
		RecommendedProductIDs: ids,
	}, nil
}

// ProductIDs returns a copy of the configured recommendation list.
func (e *Engine) ProductIDs() []int {
	ids := make([]int, len(e.productIDs))
	copy(ids, e.productIDs)
	return ids
}
