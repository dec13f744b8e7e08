// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileSink is an append-only JSON-lines log file. The recommendation handler
// records every request and response it serves to one of these.
type FileSink struct {
	file   *os.File
	logger zerolog.Logger
}

// NewFileSink opens (creating if needed) path for appending. Existing content is never truncated.
func NewFileSink(path string) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create log directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o640) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("open log sink %s: %w", path, err)
	}

	return &FileSink{
		file:   f,
		logger: newSinkLogger(f),
	}, nil
}

// NewWriterSink builds a sink over an arbitrary writer (tests use a bytes.Buffer).
func NewWriterSink(w io.Writer) *FileSink {
	return &FileSink{logger: newSinkLogger(w)}
}

func newSinkLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// Record starts a level-less event. Level-less events are only suppressed
// when the global level is "disabled", so LOG_LEVEL=error does not empty the sink.
func (s *FileSink) Record() *zerolog.Event {
	return s.logger.Log()
}

// Close closes the underlying file, if any.
func (s *FileSink) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}
