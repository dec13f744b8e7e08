// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/revets/internal/validation"
)

// Config is the complete configuration shared by the ingest, export and server binaries.
// Each binary only reads the sections it needs.
type Config struct {
	Pipeline  PipelineConfig  `koanf:"pipeline"`
	Database  DatabaseConfig  `koanf:"database"`
	Export    ExportConfig    `koanf:"export"`
	Server    ServerConfig    `koanf:"server"`
	Cache     CacheConfig     `koanf:"cache"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// PipelineConfig controls how the sales file is read.
type PipelineConfig struct {
	CSVPath   string `koanf:"csv_path" validate:"required"`
	Delimiter string `koanf:"delimiter" validate:"len=1"`
	// StrictSchema rejects columns the sales schema does not declare.
	// When false they are kept as text columns.
	StrictSchema bool `koanf:"strict_schema"`
}

// DatabaseConfig selects the relational store holding the sales table.
type DatabaseConfig struct {
	// Driver is one of duckdb, sqlite, postgres.
	Driver string `koanf:"driver" validate:"oneof=duckdb sqlite postgres"`
	// Path is a file path for duckdb/sqlite and a connection string for postgres.
	Path      string `koanf:"path" validate:"required"`
	Table     string `koanf:"table" validate:"required,sqlident"`
	Threads   int    `koanf:"threads" validate:"min=0"` // DuckDB threads (0 = NumCPU)
	MaxMemory string `koanf:"max_memory"`               // DuckDB memory limit, e.g. "1GB"
	BatchSize int    `koanf:"batch_size" validate:"min=1"`
}

// ExportConfig holds the Parquet export destination.
type ExportConfig struct {
	Path string   `koanf:"path" validate:"required"`
	S3   S3Config `koanf:"s3"`
}

// S3Config enables uploading the exported file. Upload is skipped when Bucket is empty.
type S3Config struct {
	Bucket    string `koanf:"bucket"`
	Key       string `koanf:"key"` // defaults to the export file's base name
	Region    string `koanf:"region"`
	Endpoint  string `koanf:"endpoint" validate:"omitempty,url"` // MinIO or other S3-compatible endpoint
	PathStyle bool   `koanf:"path_style"`
	// Static credentials; when empty the AWS default chain (AWS_* variables, shared config, IMDS) is used.
	AccessKeyID     string `koanf:"access_key_id"`
	SecretAccessKey string `koanf:"secret_access_key"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// CacheConfig holds the recommendation response cache settings.
type CacheConfig struct {
	TTL        time.Duration `koanf:"ttl" validate:"gt=0"`
	MaxEntries int           `koanf:"max_entries" validate:"min=1"`
}

// RecommendConfig holds the recommendation endpoint settings.
type RecommendConfig struct {
	ProductIDs []int  `koanf:"product_ids" validate:"min=1"`
	LogPath    string `koanf:"log_path" validate:"required"`
}

// SecurityConfig holds rate limiting and CORS settings for the HTTP server.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`
	// Format is json (production) or console (development).
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	if !c.Security.RateLimitDisabled && c.Security.RateLimitReqs > 0 && c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("security.rate_limit_window must be positive when rate limiting is enabled")
	}
	return nil
}
