// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package recommend

import "errors"

// ErrProductIDRequired is returned when a request has no usable product ID.
var ErrProductIDRequired = errors.New("Product ID is required") //nolint:staticcheck // message is returned verbatim to clients

// Request is the body of a recommendation request.
type Request struct {
	// ProductID is any JSON value; numbers arrive as json.Number. It must be
	// truthy: not null, false, 0, "", [] or {}.
	ProductID interface{} `json:"product_id" validate:"truthy"`
}

// Response is returned for a valid request.
type Response struct {
	// ProductID echoes the request value as received.
	ProductID interface{} `json:"product_id"`

	// RecommendedProductIDs is the ordered recommendation list.
	RecommendedProductIDs []int `json:"recommended_product_ids"`
}
