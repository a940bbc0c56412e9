// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package crypto

import (
	"crypto/rand"
	"fmt"

	"github.com/cloudflare/circl/sign/mldsa/mldsa44"

	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
)

// DilithiumSigner implements FIPS 204 ML-DSA-44 (CRYSTALS-Dilithium2,
// NIST security level 2) via Cloudflare's CIRCL library.
type DilithiumSigner struct {
	pub  *mldsa44.PublicKey
	priv *mldsa44.PrivateKey
}

// NewDilithiumSigner returns an ML-DSA-44 signer with no key material.
func NewDilithiumSigner() *DilithiumSigner {
	return &DilithiumSigner{}
}

func (s *DilithiumSigner) Algorithm() datatypes.Algorithm {
	return datatypes.AlgorithmDilithium
}

// KeyGen generates a fresh ML-DSA-44 key pair.
func (s *DilithiumSigner) KeyGen() error {
	pub, priv, err := mldsa44.GenerateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("mldsa44 keygen: %w", err)
	}
	s.pub = pub
	s.priv = priv
	return nil
}

// Sign produces a randomized ML-DSA-44 signature with an empty context
// string.
func (s *DilithiumSigner) Sign(msg []byte) ([]byte, error) {
	if s.priv == nil {
		return nil, ErrNoKeys
	}
	sig := make([]byte, mldsa44.SignatureSize)
	if err := mldsa44.SignTo(s.priv, msg, nil, true, sig); err != nil {
		return nil, fmt.Errorf("mldsa44 sign: %w", err)
	}
	return sig, nil
}

// Verify checks an ML-DSA-44 signature with an empty context string.
func (s *DilithiumSigner) Verify(msg, sig []byte) (bool, error) {
	if s.pub == nil {
		return false, ErrNoKeys
	}
	return mldsa44.Verify(s.pub, msg, nil, sig), nil
}

func (s *DilithiumSigner) HasKeys() bool {
	return s.priv != nil
}
