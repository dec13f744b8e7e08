// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"slices"

	"github.com/goccy/go-json"

	"github.com/tomtom215/revets/internal/cache"
	"github.com/tomtom215/revets/internal/logging"
)

// MaxCachedRequestBody bounds the request body read for cache keying.
const MaxCachedRequestBody = 1 << 20

// cachedResponse is a captured 200 response.
type cachedResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

// cacheKeyParams is everything that distinguishes two requests to one route.
type cacheKeyParams struct {
	Query    string `json:"query"`
	BodyHash string `json:"body_sha256"`
}

// ResponseCache serves repeated identical requests from c. Requests are
// identical when method, path, query string (parameter order ignored) and
// body bytes all match. Only 200 responses are stored. A hit replays the
// stored status, headers and body without calling next.
func ResponseCache(c *cache.Cache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxCachedRequestBody))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					writeJSONError(w, http.StatusRequestEntityTooLarge, "Request body too large")
					return
				}
				writeJSONError(w, http.StatusBadRequest, "Invalid request body")
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			key := RequestCacheKey(r, body)
			if v, ok := c.Get(key); ok {
				if resp, ok := v.(*cachedResponse); ok {
					logging.Ctx(r.Context()).Debug().
						Str("path", r.URL.Path).
						Msg("Serving cached response")
					replay(w, resp)
					return
				}
			}

			// Headers already set by outer middleware (request ID, rate limit
			// counters) belong to this request only and are not stored.
			outer := w.Header().Clone()
			rec := &capturingWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.statusCode == http.StatusOK {
				c.Set(key, &cachedResponse{
					Status: rec.statusCode,
					Header: handlerHeaders(outer, rec.Header()),
					Body:   rec.body.Bytes(),
				})
			}
		})
	}
}

// RequestCacheKey derives the cache key for r with the given body.
func RequestCacheKey(r *http.Request, body []byte) string {
	sum := sha256.Sum256(body)
	return cache.GenerateKey(r.Method+" "+r.URL.Path, cacheKeyParams{
		// Encode sorts by key, so ?a=1&b=2 and ?b=2&a=1 share an entry.
		Query:    r.URL.Query().Encode(),
		BodyHash: hex.EncodeToString(sum[:]),
	})
}

// handlerHeaders returns the headers in after that are new or changed relative to before.
func handlerHeaders(before, after http.Header) http.Header {
	out := make(http.Header, len(after))
	for k, v := range after {
		if prev, ok := before[k]; ok && slices.Equal(prev, v) {
			continue
		}
		out[k] = append([]string(nil), v...)
	}
	return out
}

func replay(w http.ResponseWriter, resp *cachedResponse) {
	dst := w.Header()
	for k, v := range resp.Header {
		dst[k] = append([]string(nil), v...)
	}
	w.WriteHeader(resp.Status)
	if _, err := w.Write(resp.Body); err != nil {
		logging.Error().Err(err).Msg("Failed to write cached response")
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	data, err := json.Marshal(map[string]string{"error": message})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// capturingWriter tees the response body and records the status code.
type capturingWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
	body        bytes.Buffer
}

func (cw *capturingWriter) WriteHeader(code int) {
	if !cw.wroteHeader {
		cw.statusCode = code
		cw.wroteHeader = true
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *capturingWriter) Write(b []byte) (int, error) {
	cw.wroteHeader = true
	cw.body.Write(b)
	return cw.ResponseWriter.Write(b)
}

func (cw *capturingWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}
