// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package export

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tomtom215/revets/internal/config"
)

// fakeS3 answers PutObject requests and records what it saw.
type fakeS3 struct {
	mu          sync.Mutex
	method      string
	path        string
	contentType string
	auth        string
	status      int
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	f.method = req.Method
	f.path = req.URL.Path
	f.contentType = req.Header.Get("Content-Type")
	f.auth = req.Header.Get("Authorization")
	status := f.status
	f.mu.Unlock()

	if req.Body != nil {
		_, _ = io.Copy(io.Discard, req.Body)
		_ = req.Body.Close()
	}
	if status == 0 {
		status = http.StatusOK
	}

	body := ""
	if status != http.StatusOK {
		body = `<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>Access Denied</Message></Error>`
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Etag": []string{`"abc123"`}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}, nil
}

func newTestUploader(t *testing.T, rt http.RoundTripper) *S3Uploader {
	t.Helper()

	up, err := NewS3Uploader(context.Background(), config.S3Config{
		Bucket:          "exports",
		Region:          "eu-west-1",
		Endpoint:        "https://minio.test.local",
		PathStyle:       true,
		AccessKeyID:     "AKIATEST",
		SecretAccessKey: "SECRET",
	}, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: rt}
	})
	if err != nil {
		t.Fatalf("NewS3Uploader() error = %v", err)
	}
	return up
}

func TestS3UploaderUpload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.parquet")
	if err := os.WriteFile(path, []byte("PAR1 test PAR1"), 0o600); err != nil {
		t.Fatal(err)
	}

	fake := &fakeS3{}
	loc, err := newTestUploader(t, fake).Upload(context.Background(), path, "daily/sales.parquet")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if loc != "s3://exports/daily/sales.parquet" {
		t.Errorf("location = %q", loc)
	}
	if fake.method != http.MethodPut {
		t.Errorf("method = %s, want PUT", fake.method)
	}
	if fake.path != "/exports/daily/sales.parquet" {
		t.Errorf("path = %s, want /exports/daily/sales.parquet", fake.path)
	}
	if fake.contentType != parquetContentType {
		t.Errorf("content type = %q", fake.contentType)
	}
	if !strings.Contains(fake.auth, "AKIATEST") {
		t.Errorf("request not signed with static credentials: %q", fake.auth)
	}
}

func TestS3UploaderErrors(t *testing.T) {
	if _, err := NewS3Uploader(context.Background(), config.S3Config{}); err == nil {
		t.Error("expected error without a bucket")
	}

	up := newTestUploader(t, &fakeS3{status: http.StatusForbidden})
	if _, err := up.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.parquet"), "k"); err == nil {
		t.Error("expected error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "sales.parquet")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := up.Upload(context.Background(), path, "k"); err == nil || !strings.Contains(err.Error(), "s3://exports/k") {
		t.Errorf("error = %v, want put failure naming the object", err)
	}
}
