// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes provides data structures for the benchmark service.
//
// This file contains the core domain types: trial results, the algorithm and
// operation enumerations, static algorithm reference profiles, and the
// aggregate statistics computed over the result log.
package datatypes

import (
	"fmt"
	"time"
)

// =============================================================================
// Enumerations
// =============================================================================

// Algorithm identifies a signature scheme under test.
type Algorithm string

const (
	// AlgorithmECC is FIPS 186-5 ECDSA over the NIST P-256 curve.
	AlgorithmECC Algorithm = "ecc"

	// AlgorithmDilithium is FIPS 204 ML-DSA-44 (CRYSTALS-Dilithium2).
	AlgorithmDilithium Algorithm = "dilithium"
)

// Operation identifies a signature primitive operation.
type Operation string

const (
	OperationKeyGen Operation = "keygen"
	OperationSign   Operation = "sign"
	OperationVerify Operation = "verify"
)

// Status is the outcome of a single trial.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Algorithms returns all supported algorithms in display order.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmECC, AlgorithmDilithium}
}

// Operations returns all operations in the fixed display order used by the
// comparison chart.
func Operations() []Operation {
	return []Operation{OperationKeyGen, OperationSign, OperationVerify}
}

// ParseAlgorithm converts a wire code to an Algorithm.
//
// # Outputs
//
//   - Algorithm: The parsed algorithm.
//   - error: ErrInvalidRequest category if the code is unknown.
func ParseAlgorithm(code string) (Algorithm, error) {
	switch Algorithm(code) {
	case AlgorithmECC:
		return AlgorithmECC, nil
	case AlgorithmDilithium:
		return AlgorithmDilithium, nil
	default:
		return "", fmt.Errorf("%w: unknown algorithm %q", ErrInvalidRequest, code)
	}
}

// ParseOperation converts a wire code to an Operation.
func ParseOperation(code string) (Operation, error) {
	switch Operation(code) {
	case OperationKeyGen:
		return OperationKeyGen, nil
	case OperationSign:
		return OperationSign, nil
	case OperationVerify:
		return OperationVerify, nil
	default:
		return "", fmt.Errorf("%w: unknown operation %q", ErrInvalidRequest, code)
	}
}

// =============================================================================
// Trial Results
// =============================================================================

// TrialResult is one execution of a signature operation with measured cost.
//
// # Description
//
// A TrialResult is created by the trial runner after each measured call and is
// immutable from that point on. The result store owns appended results; they
// are only ever removed by a full clear.
//
// # Fields
//
//   - ID: UUID v4 assigned when the trial is recorded.
//   - Timestamp: UTC creation time.
//   - Algorithm, Operation: what was measured.
//   - MessageSize: message length in bytes (>= 1).
//   - ExecutionTimeMs: wall-clock cost, always > 0 (floor-clamped).
//   - MemoryUsageKb: heap delta in KiB, always > 0 (floor-clamped).
//   - Status: success or failure. Failed trials keep their timing data.
//   - ErrorMessage: set only on failure; excluded from CSV export.
type TrialResult struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	Algorithm       Algorithm `json:"algorithm"`
	Operation       Operation `json:"operation"`
	MessageSize     int       `json:"message_size"`
	ExecutionTimeMs float64   `json:"execution_time_ms"`
	MemoryUsageKb   float64   `json:"memory_usage_kb"`
	Status          Status    `json:"status"`
	ErrorMessage    string    `json:"error_message,omitempty"`
}

// Succeeded reports whether the trial completed without a primitive failure.
func (r TrialResult) Succeeded() bool {
	return r.Status == StatusSuccess
}

// =============================================================================
// Aggregate Statistics
// =============================================================================

// StatKey identifies one algorithm/operation cell in the statistics table.
type StatKey struct {
	Algorithm Algorithm `json:"algorithm"`
	Operation Operation `json:"operation"`
}

// AggregateStat holds derived statistics for one algorithm/operation pair.
//
// # Description
//
// Computed over successful trials only. A pair with zero successes has no
// AggregateStat at all ("no data"), never a zero-valued one; the chart layer
// substitutes 0 for missing cells, the table omits their rows.
//
// # Fields
//
//   - Count: number of successful trials in the subset.
//   - MeanExecutionTimeMs / MeanMemoryUsageKb: arithmetic means.
//   - MinExecutionTimeMs / MaxExecutionTimeMs: observed extremes.
type AggregateStat struct {
	Count               int     `json:"count"`
	MeanExecutionTimeMs float64 `json:"mean_execution_time_ms"`
	MeanMemoryUsageKb   float64 `json:"mean_memory_usage_kb"`
	MinExecutionTimeMs  float64 `json:"min_execution_time_ms"`
	MaxExecutionTimeMs  float64 `json:"max_execution_time_ms"`
}

// =============================================================================
// Algorithm Reference Profiles
// =============================================================================

// AlgorithmProfile is static, read-only reference data about a scheme.
//
// Profiles provide display context for the dashboard. They are never derived
// from trial data and never participate in aggregation.
type AlgorithmProfile struct {
	Code          Algorithm `json:"code"`
	DisplayName   string    `json:"display_name"`
	KeySizes      string    `json:"key_sizes"`
	SecurityLevel string    `json:"security_level"`
	Description   string    `json:"description"`
}

// Profiles returns the reference profiles for all supported algorithms.
func Profiles() []AlgorithmProfile {
	return []AlgorithmProfile{
		{
			Code:          AlgorithmECC,
			DisplayName:   "ECC (Elliptic Curve)",
			KeySizes:      "256-bit private, 65-byte uncompressed public",
			SecurityLevel: "~128-bit classical",
			Description:   "FIPS 186-5 ECDSA on secp256r1 (P-256) with SHA-256 digests.",
		},
		{
			Code:          AlgorithmDilithium,
			DisplayName:   "CRYSTALS-Dilithium",
			KeySizes:      "1312-byte public, 2560-byte private, 2420-byte signatures",
			SecurityLevel: "NIST level 2 (post-quantum)",
			Description:   "FIPS 204 ML-DSA-44, the lattice-based successor to classical signatures.",
		},
	}
}
