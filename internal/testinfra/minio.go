// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultMinIOImage is the S3-compatible server used for upload tests.
	DefaultMinIOImage = "minio/minio:latest"

	minioPort      = "9000/tcp"
	MinIOAccessKey = "revetsaccess"
	MinIOSecretKey = "revetssecret"
)

// MinIOContainer is a running MinIO server with one bucket.
type MinIOContainer struct {
	testcontainers.Container
	// Endpoint is the http:// base URL of the S3 API.
	Endpoint string
	Bucket   string
}

// NewMinIOContainer starts MinIO and creates bucket inside it.
func NewMinIOContainer(ctx context.Context, bucket string) (*MinIOContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        DefaultMinIOImage,
		ExposedPorts: []string{minioPort},
		Env: map[string]string{
			"MINIO_ROOT_USER":     MinIOAccessKey,
			"MINIO_ROOT_PASSWORD": MinIOSecretKey,
		},
		Cmd: []string{"server", "/data"},
		WaitingFor: wait.ForHTTP("/minio/health/ready").
			WithPort(minioPort).
			WithStartupTimeout(defaultStartTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio container: %w", err)
	}

	// Buckets are plain directories under the data root.
	code, out, err := container.Exec(ctx, []string{"mkdir", "-p", "/data/" + bucket})
	if err != nil || code != 0 {
		var detail []byte
		if out != nil {
			detail, _ = io.ReadAll(out)
		}
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("create bucket %s (code %d): %v %s", bucket, code, err, detail)
	}

	addr, err := endpoint(ctx, container, minioPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, err
	}

	return &MinIOContainer{
		Container: container,
		Endpoint:  "http://" + addr,
		Bucket:    bucket,
	}, nil
}

// StartMinIO starts a container for the duration of t, skipping without Docker.
func StartMinIO(t *testing.T, bucket string) *MinIOContainer {
	t.Helper()
	SkipIfNoDocker(t)

	ctx := context.Background()
	m, err := NewMinIOContainer(ctx, bucket)
	if err != nil {
		t.Fatalf("start minio: %v", err)
	}
	t.Cleanup(func() { CleanupContainer(t, ctx, m.Container) })
	return m
}
