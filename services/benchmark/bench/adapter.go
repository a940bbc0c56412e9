// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package bench implements the measurement pipeline: the adapter that wraps a
// single primitive call with timing and memory instrumentation, and the
// runner that executes multi-iteration trials against a result store.
package bench

import (
	"crypto/rand"
	"fmt"
	"runtime"
	"time"

	"github.com/AleutianAI/CryptoBench/services/benchmark/crypto"
	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
)

const (
	// MinExecutionTimeMs is a floor applied to every measured duration so a
	// sub-resolution call never records as zero. Avoids division and display
	// artifacts downstream.
	MinExecutionTimeMs = 0.0001

	// MinMemoryUsageKb is the corresponding floor for allocation deltas.
	MinMemoryUsageKb = 0.0001
)

// Sample is the raw outcome of one measured primitive call.
//
// A failed primitive still yields a Sample: failures are data points, not
// control flow. Only configuration errors (unknown algorithm or operation,
// non-positive message size) and environment failures surface as Go errors.
type Sample struct {
	ExecutionTimeMs float64
	MemoryUsageKb   float64
	Status          datatypes.Status
	ErrorMessage    string
}

// SignerFactory constructs a signer for an algorithm. Swappable in tests.
type SignerFactory func(datatypes.Algorithm) (crypto.Signer, error)

// Adapter wraps one primitive call with a wall-clock timer and a memory-delta
// sampler.
//
// # Description
//
// Measure prepares everything the target operation needs (key material, a
// random message, a signature to verify) outside the timed region, then times
// exactly one primitive call. The memory sampler reads runtime.MemStats
// before and after and reports the TotalAlloc delta in KiB.
//
// # Thread Safety
//
// Adapter is stateless apart from its factory and safe for concurrent use;
// each Measure call builds a private signer.
type Adapter struct {
	newSigner SignerFactory
}

// NewAdapter returns an adapter backed by the real signature libraries.
func NewAdapter() *Adapter {
	return &Adapter{newSigner: crypto.New}
}

// NewAdapterWithFactory returns an adapter with a custom signer factory.
// Used by tests to inject failing or deterministic signers.
func NewAdapterWithFactory(factory SignerFactory) *Adapter {
	return &Adapter{newSigner: factory}
}

// Measure executes one trial of the given operation.
//
// # Inputs
//
//   - alg, op: what to measure. Unknown codes fail fast with
//     datatypes.ErrInvalidRequest before any timer starts.
//   - messageSize: message length in bytes, >= 1.
//
// # Outputs
//
//   - Sample: timing, memory, and status of the attempted call. Returned for
//     both successes and primitive failures.
//   - error: non-nil only for invalid requests (no side effects) or
//     environment failures (signer library unusable).
func (a *Adapter) Measure(alg datatypes.Algorithm, op datatypes.Operation, messageSize int) (Sample, error) {
	if _, err := datatypes.ParseAlgorithm(string(alg)); err != nil {
		return Sample{}, err
	}
	if _, err := datatypes.ParseOperation(string(op)); err != nil {
		return Sample{}, err
	}
	if messageSize < 1 {
		return Sample{}, fmt.Errorf("%w: message size must be >= 1 byte, got %d",
			datatypes.ErrInvalidRequest, messageSize)
	}

	signer, err := a.newSigner(alg)
	if err != nil {
		return Sample{}, fmt.Errorf("%w: %v", datatypes.ErrEnvironment, err)
	}

	msg := make([]byte, messageSize)
	if _, err := rand.Read(msg); err != nil {
		return Sample{}, fmt.Errorf("%w: reading random message: %v",
			datatypes.ErrEnvironment, err)
	}

	// Untimed setup: sign needs keys, verify needs keys and a signature.
	var sig []byte
	switch op {
	case datatypes.OperationSign, datatypes.OperationVerify:
		if err := signer.KeyGen(); err != nil {
			return failureSample(err), nil
		}
		if op == datatypes.OperationVerify {
			sig, err = signer.Sign(msg)
			if err != nil {
				return failureSample(err), nil
			}
		}
	}

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()

	var opErr error
	switch op {
	case datatypes.OperationKeyGen:
		opErr = signer.KeyGen()
	case datatypes.OperationSign:
		_, opErr = signer.Sign(msg)
	case datatypes.OperationVerify:
		var ok bool
		ok, opErr = signer.Verify(msg, sig)
		if opErr == nil && !ok {
			opErr = fmt.Errorf("signature verification failed")
		}
	}

	elapsed := time.Since(start)
	runtime.ReadMemStats(&after)

	sample := Sample{
		ExecutionTimeMs: clampFloor(float64(elapsed.Nanoseconds())/1e6, MinExecutionTimeMs),
		MemoryUsageKb:   clampFloor(float64(after.TotalAlloc-before.TotalAlloc)/1024, MinMemoryUsageKb),
		Status:          datatypes.StatusSuccess,
	}
	if opErr != nil {
		sample.Status = datatypes.StatusFailure
		sample.ErrorMessage = opErr.Error()
	}
	return sample, nil
}

// failureSample records a primitive failure during untimed setup. The
// attempted operation never ran, so both metrics sit at their floors.
func failureSample(err error) Sample {
	return Sample{
		ExecutionTimeMs: MinExecutionTimeMs,
		MemoryUsageKb:   MinMemoryUsageKb,
		Status:          datatypes.StatusFailure,
		ErrorMessage:    err.Error(),
	}
}

func clampFloor(v, floor float64) float64 {
	if v < floor {
		return floor
	}
	return v
}
