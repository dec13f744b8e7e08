// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by the HTTP layer (request bodies)
// and the config loader. Two custom tags are registered:
//
//	type RecommendRequest struct {
//	    ProductID interface{} `json:"product_id" validate:"truthy"`
//	}
//
//	type DatabaseConfig struct {
//	    Table string `validate:"required,sqlident"`
//	}
//
// truthy rejects nil, false, 0, "" and empty arrays/objects; sqlident only
// allows identifiers that can be interpolated into DDL without quoting.
package validation
