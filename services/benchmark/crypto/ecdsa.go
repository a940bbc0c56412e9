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
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
)

// ErrNoKeys is returned when Sign or Verify is called before KeyGen.
var ErrNoKeys = errors.New("keys not generated")

// ECDSASigner implements FIPS 186-5 ECDSA on secp256r1 (P-256).
//
// Messages are hashed with SHA-256; signatures use the ASN.1 DER encoding
// produced by crypto/ecdsa.SignASN1.
type ECDSASigner struct {
	priv *ecdsa.PrivateKey
}

// NewECDSASigner returns an ECDSA signer with no key material.
func NewECDSASigner() *ECDSASigner {
	return &ECDSASigner{}
}

func (s *ECDSASigner) Algorithm() datatypes.Algorithm {
	return datatypes.AlgorithmECC
}

// KeyGen generates a fresh P-256 key pair.
func (s *ECDSASigner) KeyGen() error {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("ecdsa keygen: %w", err)
	}
	s.priv = priv
	return nil
}

// Sign produces an ASN.1 DER signature over SHA-256(msg).
func (s *ECDSASigner) Sign(msg []byte) ([]byte, error) {
	if s.priv == nil {
		return nil, ErrNoKeys
	}
	digest := sha256.Sum256(msg)
	sig, err := ecdsa.SignASN1(rand.Reader, s.priv, digest[:])
	if err != nil {
		return nil, fmt.Errorf("ecdsa sign: %w", err)
	}
	return sig, nil
}

// Verify checks an ASN.1 DER signature over SHA-256(msg).
func (s *ECDSASigner) Verify(msg, sig []byte) (bool, error) {
	if s.priv == nil {
		return false, ErrNoKeys
	}
	digest := sha256.Sum256(msg)
	return ecdsa.VerifyASN1(&s.priv.PublicKey, digest[:], sig), nil
}

func (s *ECDSASigner) HasKeys() bool {
	return s.priv != nil
}
