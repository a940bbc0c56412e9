// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package bench

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
	"github.com/AleutianAI/CryptoBench/services/benchmark/store"
)

// Spec selects what a run measures.
type Spec struct {
	Algorithm   datatypes.Algorithm
	Operation   datatypes.Operation
	MessageSize int
	Iterations  int

	// Pause is an optional fixed delay between iterations, giving callers
	// driving a live view time to redraw.
	Pause time.Duration
}

// YieldFunc receives each result as soon as it is recorded, before the next
// iteration starts. Returning an error stops the run.
type YieldFunc func(datatypes.TrialResult) error

// Runner executes multi-iteration benchmark runs against a result store.
//
// # Description
//
// A run is a strictly sequential loop: measure once, stamp and append the
// result, yield it to the caller, optionally pause, repeat. No two primitive
// calls of the same run ever overlap, and concurrent Run calls on the same
// Runner are serialized by a mutex so interleaved appends cannot corrupt log
// ordering behind a multi-request server.
//
// Iterations are independent trials: a primitive failure in iteration i is
// recorded and iteration i+1 proceeds. Only invalid requests (rejected before
// any execution) and environment failures stop a run.
//
// Cancellation is honored between iterations via the context; an individual
// primitive call is never interrupted or timed out.
type Runner struct {
	adapter *Adapter
	store   store.Store
	logger  *slog.Logger

	// runMu serializes whole runs, not individual appends.
	runMu sync.Mutex
}

// NewRunner wires an adapter to a result store.
func NewRunner(adapter *Adapter, st store.Store, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{adapter: adapter, store: st, logger: logger}
}

// Store returns the result store this runner appends to.
func (r *Runner) Store() store.Store {
	return r.store
}

// Validate rejects an unusable spec before any trial executes.
func (s Spec) Validate() error {
	if _, err := datatypes.ParseAlgorithm(string(s.Algorithm)); err != nil {
		return err
	}
	if _, err := datatypes.ParseOperation(string(s.Operation)); err != nil {
		return err
	}
	if s.MessageSize < 1 {
		return fmt.Errorf("%w: message size must be >= 1 byte, got %d",
			datatypes.ErrInvalidRequest, s.MessageSize)
	}
	if s.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be >= 1, got %d",
			datatypes.ErrInvalidRequest, s.Iterations)
	}
	return nil
}

// Run executes spec.Iterations trials.
//
// # Inputs
//
//   - ctx: checked between iterations; cancellation ends the run early with
//     ctx.Err() after the in-flight iteration completes.
//   - spec: validated up front; an invalid spec appends nothing.
//   - yield: optional; called with each result after it is appended and
//     before the next iteration starts.
//
// # Outputs
//
//   - []datatypes.TrialResult: results recorded by this run, in call order.
//   - error: nil on completion; ErrInvalidRequest/ErrEnvironment categories,
//     a yield error, or ctx.Err() otherwise. Results recorded before an
//     early stop remain in the store.
func (r *Runner) Run(ctx context.Context, spec Spec, yield YieldFunc) ([]datatypes.TrialResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	r.runMu.Lock()
	defer r.runMu.Unlock()

	r.logger.Info("benchmark run started",
		"algorithm", spec.Algorithm,
		"operation", spec.Operation,
		"message_size", spec.MessageSize,
		"iterations", spec.Iterations,
	)

	results := make([]datatypes.TrialResult, 0, spec.Iterations)
	for i := 0; i < spec.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("benchmark run cancelled",
				"completed", len(results), "requested", spec.Iterations)
			return results, err
		}

		sample, err := r.adapter.Measure(spec.Algorithm, spec.Operation, spec.MessageSize)
		if err != nil {
			// Invalid requests are caught by Validate, so this is an
			// environment failure: abort with no partial result for the
			// aborted iteration.
			r.logger.Error("benchmark iteration aborted", "iteration", i, "error", err)
			return results, err
		}

		result := datatypes.TrialResult{
			ID:              uuid.NewString(),
			Timestamp:       time.Now().UTC(),
			Algorithm:       spec.Algorithm,
			Operation:       spec.Operation,
			MessageSize:     spec.MessageSize,
			ExecutionTimeMs: sample.ExecutionTimeMs,
			MemoryUsageKb:   sample.MemoryUsageKb,
			Status:          sample.Status,
			ErrorMessage:    sample.ErrorMessage,
		}
		if err := r.store.Append(result); err != nil {
			return results, fmt.Errorf("append trial result: %w", err)
		}
		results = append(results, result)

		if yield != nil {
			if err := yield(result); err != nil {
				r.logger.Warn("benchmark run stopped by consumer",
					"completed", len(results), "error", err)
				return results, err
			}
		}

		if spec.Pause > 0 && i < spec.Iterations-1 {
			select {
			case <-ctx.Done():
				return results, ctx.Err()
			case <-time.After(spec.Pause):
			}
		}
	}

	r.logger.Info("benchmark run finished", "results", len(results))
	return results, nil
}

// RunOnce executes a single synchronous trial.
func (r *Runner) RunOnce(ctx context.Context, alg datatypes.Algorithm, op datatypes.Operation, messageSize int) (datatypes.TrialResult, error) {
	results, err := r.Run(ctx, Spec{
		Algorithm:   alg,
		Operation:   op,
		MessageSize: messageSize,
		Iterations:  1,
	}, nil)
	if err != nil {
		return datatypes.TrialResult{}, err
	}
	return results[0], nil
}
