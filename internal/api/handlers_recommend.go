// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/revets/internal/logging"
	"github.com/tomtom215/revets/internal/recommend"
)

// Recommend handles POST /recommend.
//
// Body: {"product_id": <any JSON value>}. A missing or falsy product_id
// yields 400 {"error": "Product ID is required"}; anything that is not a JSON
// object yields 400 {"error": "Invalid JSON body"}. Rejected requests are not
// logged. On success the product ID is echoed with the recommendation list and
// both the request and the response are appended to the request log.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommend.Request
	if err := decodeRequest(r.Body, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, MsgInvalidJSON, err)
		return
	}

	resp, err := h.engine.Recommend(r.Context(), req)
	if err != nil {
		if errors.Is(err, recommend.ErrProductIDRequired) {
			respondError(w, r, http.StatusBadRequest, MsgProductIDRequired, nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, MsgInternal, err)
		return
	}

	requestID := logging.RequestIDFromContext(r.Context())
	if h.sink != nil {
		h.sink.Record().
			Str("request_id", requestID).
			Interface("product_id", resp.ProductID).
			Msg("Received request for Product ID")
	}

	body := respondJSON(w, http.StatusOK, resp)

	if h.sink != nil && body != nil {
		h.sink.Record().
			Str("request_id", requestID).
			RawJSON("response", body).
			Msg("Response")
	}
}

// decodeRequest reads exactly one JSON value from body into v. Numbers are
// kept as json.Number so product IDs echo back digit for digit.
func decodeRequest(body io.Reader, v interface{}) error {
	dec := json.NewDecoder(body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}

	var trailing json.RawMessage
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}
