// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for benchmark request validation and defaulting

package datatypes

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() RunBenchmarkRequest {
	return RunBenchmarkRequest{
		Algorithm:   "ecc",
		Operation:   "sign",
		MessageSize: 256,
		Iterations:  10,
	}
}

func TestRunBenchmarkRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RunBenchmarkRequest)
		wantErr bool
	}{
		{"valid", func(r *RunBenchmarkRequest) {}, false},
		{"dilithium verify", func(r *RunBenchmarkRequest) {
			r.Algorithm = "dilithium"
			r.Operation = "verify"
		}, false},
		{"omitted optionals", func(r *RunBenchmarkRequest) {
			r.MessageSize = 0
			r.Iterations = 0
		}, false},
		{"min bounds", func(r *RunBenchmarkRequest) {
			r.MessageSize = 32
			r.Iterations = 1
		}, false},
		{"max bounds", func(r *RunBenchmarkRequest) {
			r.MessageSize = 4096
			r.Iterations = 1000
		}, false},
		{"explicit request id", func(r *RunBenchmarkRequest) {
			r.RequestID = uuid.NewString()
		}, false},

		{"missing algorithm", func(r *RunBenchmarkRequest) { r.Algorithm = "" }, true},
		{"unknown algorithm", func(r *RunBenchmarkRequest) { r.Algorithm = "rsa" }, true},
		{"missing operation", func(r *RunBenchmarkRequest) { r.Operation = "" }, true},
		{"unknown operation", func(r *RunBenchmarkRequest) { r.Operation = "encrypt" }, true},
		{"message size too small", func(r *RunBenchmarkRequest) { r.MessageSize = 16 }, true},
		{"message size too large", func(r *RunBenchmarkRequest) { r.MessageSize = 8192 }, true},
		{"too many iterations", func(r *RunBenchmarkRequest) { r.Iterations = 1001 }, true},
		{"negative pause", func(r *RunBenchmarkRequest) { r.PauseMs = -1 }, true},
		{"pause too long", func(r *RunBenchmarkRequest) { r.PauseMs = 5000 }, true},
		{"malformed request id", func(r *RunBenchmarkRequest) { r.RequestID = "not-a-uuid" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRunBenchmarkRequest_EnsureDefaults(t *testing.T) {
	req := RunBenchmarkRequest{Algorithm: "ecc", Operation: "keygen"}
	req.EnsureDefaults()

	assert.Equal(t, DefaultMessageSizeBytes, req.MessageSize)
	assert.Equal(t, 1, req.Iterations)

	_, err := uuid.Parse(req.RequestID)
	require.NoError(t, err, "EnsureDefaults must assign a valid request id")
}

func TestRunBenchmarkRequest_EnsureDefaultsPreservesExplicit(t *testing.T) {
	id := uuid.NewString()
	req := RunBenchmarkRequest{
		RequestID:   id,
		Algorithm:   "dilithium",
		Operation:   "sign",
		MessageSize: 1024,
		Iterations:  50,
	}
	req.EnsureDefaults()

	assert.Equal(t, id, req.RequestID)
	assert.Equal(t, 1024, req.MessageSize)
	assert.Equal(t, 50, req.Iterations)
}
