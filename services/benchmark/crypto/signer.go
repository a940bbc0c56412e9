// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package crypto wraps the external signature libraries behind a uniform
// Signer interface.
//
// # Description
//
// The benchmark pipeline treats cryptography as a black box: a Signer exposes
// key generation, signing, and verification, each with a measurable cost. The
// primitives come from the standard library's crypto/ecdsa for the classical
// scheme and Cloudflare's CIRCL for ML-DSA; nothing is reimplemented or tuned
// here.
//
// # Thread Safety
//
// A Signer is NOT safe for concurrent use. The trial runner constructs a
// fresh signer per run and drives it strictly sequentially.
package crypto

import (
	"fmt"

	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
)

// Signer is one algorithm's primitive surface.
//
// Sign and Verify require prior key material; callers are expected to invoke
// KeyGen first (the measurement adapter does this implicitly for sign and
// verify trials). Verify returns (false, nil) for a well-formed but invalid
// signature; an error return means the library itself rejected the call.
type Signer interface {
	// Algorithm returns the scheme code this signer implements.
	Algorithm() datatypes.Algorithm

	// KeyGen generates and retains a fresh key pair.
	KeyGen() error

	// Sign signs msg with the retained private key.
	Sign(msg []byte) ([]byte, error)

	// Verify checks sig over msg with the retained public key.
	Verify(msg, sig []byte) (bool, error)

	// HasKeys reports whether key material is present.
	HasKeys() bool
}

// New constructs a fresh signer for the given algorithm.
//
// # Outputs
//
//   - Signer: Ready for KeyGen. Never shared between runs.
//   - error: ErrInvalidRequest category for unknown algorithms.
func New(alg datatypes.Algorithm) (Signer, error) {
	switch alg {
	case datatypes.AlgorithmECC:
		return NewECDSASigner(), nil
	case datatypes.AlgorithmDilithium:
		return NewDilithiumSigner(), nil
	default:
		return nil, fmt.Errorf("%w: no signer for algorithm %q",
			datatypes.ErrInvalidRequest, alg)
	}
}
