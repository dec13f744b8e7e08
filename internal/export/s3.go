// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package export

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tomtom215/revets/internal/config"
)

const (
	defaultS3Region    = "us-east-1"
	parquetContentType = "application/vnd.apache.parquet"
)

// S3Uploader uploads exports to one bucket of AWS S3 or an S3-compatible
// store such as MinIO.
type S3Uploader struct {
	client *s3.Client
	bucket string
}

// NewS3Uploader builds an uploader from cfg. Credentials come from cfg when
// set, otherwise from the AWS default chain. optFns adjust the S3 client
// (tests swap the HTTP client).
func NewS3Uploader(ctx context.Context, cfg config.S3Config, optFns ...func(*s3.Options)) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}

	region := cfg.Region
	if region == "" {
		region = defaultS3Region
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		for _, fn := range optFns {
			fn(o)
		}
	})

	return &S3Uploader{client: client, bucket: cfg.Bucket}, nil
}

// Upload puts the file at path under key and returns its s3:// URI.
func (u *S3Uploader) Upload(ctx context.Context, path, key string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // path is the export we just wrote
	if err != nil {
		return "", fmt.Errorf("open export: %w", err)
	}
	defer func() {
		_ = f.Close() // read-only
	}()

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(parquetContentType),
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", u.bucket, key, err)
	}

	return fmt.Sprintf("s3://%s/%s", u.bucket, key), nil
}
