// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Request and response types for the benchmark HTTP endpoints.
package datatypes

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// =============================================================================
// Boundary Limits
// =============================================================================

const (
	// MinMessageSizeBytes is the smallest message accepted at the web
	// boundary. The core pipeline accepts any size >= 1; the dashboard keeps
	// the historical 32-byte floor so results stay comparable across runs.
	MinMessageSizeBytes = 32

	// MaxMessageSizeBytes caps message payloads at the web boundary.
	MaxMessageSizeBytes = 4096

	// DefaultMessageSizeBytes is used when a request omits message_size.
	DefaultMessageSizeBytes = 256

	// MaxIterationsPerRun bounds a single run request. Larger campaigns
	// should issue multiple runs so the dashboard stays responsive.
	MaxIterationsPerRun = 1000
)

// =============================================================================
// Shared Validator Instance
// =============================================================================

// benchValidate is the validator instance for benchmark datatypes.
var benchValidate *validator.Validate

func init() {
	benchValidate = validator.New()
}

// =============================================================================
// Run Request
// =============================================================================

// RunBenchmarkRequest is the body for POST /v1/benchmark/run.
//
// # Description
//
// Selects {algorithm, operation, message size, iterations} for one benchmark
// run. Iterations default to 1 (a single synchronous trial); message size
// defaults to 256 bytes. Every request carries a UUID for audit logging.
//
// # Validation
//
// Uses go-playground/validator:
//   - Algorithm: required, one of "ecc", "dilithium"
//   - Operation: required, one of "keygen", "sign", "verify"
//   - MessageSize: 0 (take default) or 32..4096
//   - Iterations: 0 (take default) or 1..1000
//   - PauseMs: 0..1000, optional pause between iterations
type RunBenchmarkRequest struct {
	RequestID   string `json:"request_id" validate:"omitempty,uuid4"`
	Algorithm   string `json:"algorithm" validate:"required,oneof=ecc dilithium"`
	Operation   string `json:"operation" validate:"required,oneof=keygen sign verify"`
	MessageSize int    `json:"message_size" validate:"omitempty,min=32,max=4096"`
	Iterations  int    `json:"iterations" validate:"omitempty,min=1,max=1000"`
	PauseMs     int    `json:"pause_ms" validate:"gte=0,lte=1000"`
}

// Validate validates the request fields after JSON binding.
func (r *RunBenchmarkRequest) Validate() error {
	return benchValidate.Struct(r)
}

// EnsureDefaults populates RequestID, MessageSize, and Iterations when the
// client omits them.
func (r *RunBenchmarkRequest) EnsureDefaults() {
	if r.RequestID == "" {
		r.RequestID = uuid.NewString()
	}
	if r.MessageSize == 0 {
		r.MessageSize = DefaultMessageSizeBytes
	}
	if r.Iterations == 0 {
		r.Iterations = 1
	}
}

// =============================================================================
// Responses
// =============================================================================

// RunBenchmarkResponse is the body returned for a completed run.
type RunBenchmarkResponse struct {
	RequestID  string        `json:"request_id"`
	StartedAt  time.Time     `json:"started_at"`
	DurationMs float64       `json:"duration_ms"`
	Results    []TrialResult `json:"results"`
}

// ResultsResponse wraps a result log snapshot.
type ResultsResponse struct {
	Count   int           `json:"count"`
	Results []TrialResult `json:"results"`
}

// StatisticsResponse maps algorithm -> operation -> aggregate stat.
//
// Cells with no successful trials are absent, not zero. Consumers that need a
// dense grid (the chart) substitute their own placeholder.
type StatisticsResponse struct {
	Statistics map[Algorithm]map[Operation]AggregateStat `json:"statistics"`
}

// ChartDataset is the grouped bar chart payload for the dashboard.
//
// Labels are always the three operations in fixed order. Each series holds one
// mean execution time per label; cells without data are 0 on the chart axis,
// which is a presentation substitution distinct from "no data" in statistics.
type ChartDataset struct {
	Labels []Operation   `json:"labels"`
	Series []ChartSeries `json:"series"`
}

// ChartSeries is one algorithm's bar series.
type ChartSeries struct {
	Algorithm Algorithm `json:"algorithm"`
	Label     string    `json:"label"`
	MeanTimes []float64 `json:"mean_times_ms"`
}
