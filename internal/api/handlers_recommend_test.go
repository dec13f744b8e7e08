// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/revets/internal/logging"
	"github.com/tomtom215/revets/internal/recommend"
)

// testSink captures request log records in memory.
type testSink struct {
	buf  *bytes.Buffer
	sink *logging.FileSink
}

func newTestSink() *testSink {
	var buf bytes.Buffer
	return &testSink{buf: &buf, sink: logging.NewWriterSink(&buf)}
}

func (s *testSink) lines() []string {
	out := strings.TrimSpace(s.buf.String())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func newTestHandler(t *testing.T, sink *logging.FileSink) *Handler {
	t.Helper()
	engine, err := recommend.NewEngine(recommend.DefaultProductIDs)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return NewHandler(engine, sink)
}

func postRecommend(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRecommend_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"integer", `{"product_id": 42}`, `{"product_id":42,"recommended_product_ids":[1,2,3]}`},
		{"string", `{"product_id": "sku-9"}`, `{"product_id":"sku-9","recommended_product_ids":[1,2,3]}`},
		{"extra fields ignored", `{"product_id": 7, "user": "x"}`, `{"product_id":7,"recommended_product_ids":[1,2,3]}`},
		{"beyond float precision", `{"product_id": 9007199254740993}`, `{"product_id":9007199254740993,"recommended_product_ids":[1,2,3]}`},
		{"nineteen digits", `{"product_id": 1234567890123456789}`, `{"product_id":1234567890123456789,"recommended_product_ids":[1,2,3]}`},
		{"twenty digits", `{"product_id": 12345678901234567890}`, `{"product_id":12345678901234567890,"recommended_product_ids":[1,2,3]}`},
		{"fraction", `{"product_id": 1.5}`, `{"product_id":1.5,"recommended_product_ids":[1,2,3]}`},
		{"trailing whitespace", "{\"product_id\": 3}\n  ", `{"product_id":3,"recommended_product_ids":[1,2,3]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sink := newTestSink()
			h := newTestHandler(t, sink.sink)

			rec := postRecommend(h.Recommend, tt.body)

			if rec.Code != http.StatusOK {
				t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
			}
			if got := rec.Body.String(); got != tt.want {
				t.Errorf("body = %s, want %s", got, tt.want)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
		})
	}
}

func TestRecommend_MissingProductID(t *testing.T) {
	t.Parallel()

	bodies := []string{
		`{}`,
		`{"product_id": null}`,
		`{"product_id": 0}`,
		`{"product_id": -0.0}`,
		`{"product_id": 0e3}`,
		`{"product_id": ""}`,
		`{"product_id": false}`,
		`{"product_id": []}`,
		`{"product_id": {}}`,
		`null`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			t.Parallel()
			sink := newTestSink()
			h := newTestHandler(t, sink.sink)

			rec := postRecommend(h.Recommend, body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}

			var resp map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp["error"] != MsgProductIDRequired {
				t.Errorf("error = %v, want %q", resp["error"], MsgProductIDRequired)
			}
			if _, ok := resp["recommended_product_ids"]; ok {
				t.Error("error response must not include recommendations")
			}
			if lines := sink.lines(); len(lines) != 0 {
				t.Errorf("rejected request was logged: %v", lines)
			}
		})
	}
}

func TestRecommend_InvalidJSON(t *testing.T) {
	t.Parallel()

	for _, body := range []string{``, `{`, `[1,2]`, `"product"`, `{"product_id": }`, `{"product_id": 1} junk`, `{"product_id": 1}{"product_id": 2}`, `{"product_id": 1} 2`} {
		t.Run(body, func(t *testing.T) {
			t.Parallel()
			h := newTestHandler(t, nil)

			rec := postRecommend(h.Recommend, body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}
			if want := `{"error":"` + MsgInvalidJSON + `"}`; rec.Body.String() != want {
				t.Errorf("unexpected error body: %s", rec.Body.String())
			}
		})
	}
}

func TestRecommend_LogsRequestAndResponse(t *testing.T) {
	t.Parallel()

	sink := newTestSink()
	h := newTestHandler(t, sink.sink)

	rec := postRecommend(h.Recommend, `{"product_id": 101}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	lines := sink.lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 log records, got %d: %v", len(lines), lines)
	}

	var request, response map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &request); err != nil {
		t.Fatalf("request record is not JSON: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &response); err != nil {
		t.Fatalf("response record is not JSON: %v", err)
	}

	if request["message"] != "Received request for Product ID" || request["product_id"] != float64(101) {
		t.Errorf("unexpected request record: %v", request)
	}
	if response["message"] != "Response" {
		t.Errorf("unexpected response record: %v", response)
	}
	body, ok := response["response"].(map[string]interface{})
	if !ok {
		t.Fatalf("response record missing payload: %v", response)
	}
	if body["product_id"] != float64(101) {
		t.Errorf("logged payload = %v", body)
	}
}

func TestHealthLive(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil)
	rec := httptest.NewRecorder()
	h.HealthLive(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "alive" {
		t.Errorf("status = %q, want alive", resp.Status)
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	if got := sanitizeLogValue("a\nb\tc"); got != `a\x0ab\x09c` {
		t.Errorf("sanitizeLogValue() = %q", got)
	}
}
