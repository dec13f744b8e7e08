// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("replace", "duckdb", "disk full"))

	RecordDBQuery("replace", "duckdb", 10*time.Millisecond, nil)
	RecordDBQuery("replace", "duckdb", 10*time.Millisecond, errors.New("disk full"))

	if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("replace", "duckdb", "disk full")); got != before+1 {
		t.Errorf("db_query_errors_total = %v, want %v", got, before+1)
	}
}

func TestRecordDBQuery_ErrorTruncation(t *testing.T) {
	long := strings.Repeat("c", 100)
	truncated := long[:50]

	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("avg", "sqlite", truncated))
	RecordDBQuery("avg", "sqlite", time.Millisecond, errors.New(long))

	if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("avg", "sqlite", truncated)); got != before+1 {
		t.Errorf("truncated error label not incremented: got %v, want %v", got, before+1)
	}
}

func TestRecordPipelineLoad(t *testing.T) {
	rowsBefore := testutil.ToFloat64(PipelineRowsLoaded)
	profitBefore := testutil.ToFloat64(PipelineDefaultsFilled.WithLabelValues("profit"))

	RecordPipelineLoad(3, map[string]int{"profit": 2, "postal_code": 1})

	if got := testutil.ToFloat64(PipelineRowsLoaded); got != rowsBefore+3 {
		t.Errorf("pipeline_rows_loaded_total = %v, want %v", got, rowsBefore+3)
	}
	if got := testutil.ToFloat64(PipelineDefaultsFilled.WithLabelValues("profit")); got != profitBefore+2 {
		t.Errorf("pipeline_defaults_filled_total{profit} = %v, want %v", got, profitBefore+2)
	}
}

func TestRecordExportAndUpload(t *testing.T) {
	bytesBefore := testutil.ToFloat64(ExportBytes)
	okBefore := testutil.ToFloat64(ExportUploads.WithLabelValues("success"))
	errBefore := testutil.ToFloat64(ExportUploads.WithLabelValues("error"))

	RecordExport(2048, 50*time.Millisecond)
	RecordUpload(nil)
	RecordUpload(errors.New("access denied"))

	if got := testutil.ToFloat64(ExportBytes); got != bytesBefore+2048 {
		t.Errorf("export_bytes_total = %v, want %v", got, bytesBefore+2048)
	}
	if got := testutil.ToFloat64(ExportUploads.WithLabelValues("success")); got != okBefore+1 {
		t.Errorf("uploads{success} = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(ExportUploads.WithLabelValues("error")); got != errBefore+1 {
		t.Errorf("uploads{error} = %v, want %v", got, errBefore+1)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/recommend", "200"))

	RecordAPIRequest("POST", "/recommend", "200", 2*time.Millisecond)
	RecordAPIRequest("POST", "/recommend", "400", time.Millisecond)

	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/recommend", "200")); got != before+1 {
		t.Errorf("api_requests_total{200} = %v, want %v", got, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+2 {
		t.Errorf("api_active_requests = %v, want %v", got, before+2)
	}

	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("api_active_requests = %v, want %v", got, before)
	}
}

func TestCacheMetrics(t *testing.T) {
	hitsBefore := testutil.ToFloat64(ResponseCacheHits)
	missesBefore := testutil.ToFloat64(ResponseCacheMisses)
	expiredBefore := testutil.ToFloat64(ResponseCacheEvictions.WithLabelValues("expired"))

	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)
	RecordCacheEviction("expired", 3)
	RecordCacheEviction("expired", 0)
	SetCacheEntries(7)

	if got := testutil.ToFloat64(ResponseCacheHits); got != hitsBefore+1 {
		t.Errorf("hits = %v, want %v", got, hitsBefore+1)
	}
	if got := testutil.ToFloat64(ResponseCacheMisses); got != missesBefore+2 {
		t.Errorf("misses = %v, want %v", got, missesBefore+2)
	}
	if got := testutil.ToFloat64(ResponseCacheEvictions.WithLabelValues("expired")); got != expiredBefore+3 {
		t.Errorf("evictions{expired} = %v, want %v", got, expiredBefore+3)
	}
	if got := testutil.ToFloat64(ResponseCacheEntries); got != 7 {
		t.Errorf("entries = %v, want 7", got)
	}
}
