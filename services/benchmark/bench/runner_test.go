// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the trial runner

package bench

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/CryptoBench/services/benchmark/crypto"
	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
	"github.com/AleutianAI/CryptoBench/services/benchmark/store"
)

func newTestRunner(t *testing.T) (*Runner, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	t.Cleanup(func() { st.Close() })
	return NewRunner(NewAdapter(), st, nil), st
}

func TestRun_AppendsOneResultPerIteration(t *testing.T) {
	runner, st := newTestRunner(t)

	spec := Spec{
		Algorithm:   datatypes.AlgorithmECC,
		Operation:   datatypes.OperationSign,
		MessageSize: 64,
		Iterations:  5,
	}

	results, err := runner.Run(context.Background(), spec, nil)
	require.NoError(t, err)
	require.Len(t, results, 5)

	n, err := st.Len()
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	seen := make(map[string]bool)
	for _, r := range results {
		assert.Equal(t, datatypes.AlgorithmECC, r.Algorithm)
		assert.Equal(t, datatypes.OperationSign, r.Operation)
		assert.Equal(t, 64, r.MessageSize)
		assert.Equal(t, datatypes.StatusSuccess, r.Status)
		assert.False(t, r.Timestamp.IsZero())
		assert.False(t, seen[r.ID], "trial ids must be unique")
		seen[r.ID] = true
	}
}

func TestRun_InvalidSpecAppendsNothing(t *testing.T) {
	runner, st := newTestRunner(t)

	tests := []struct {
		name string
		spec Spec
	}{
		{"unknown algorithm", Spec{Algorithm: "rsa", Operation: datatypes.OperationSign, MessageSize: 64, Iterations: 1}},
		{"unknown operation", Spec{Algorithm: datatypes.AlgorithmECC, Operation: "encrypt", MessageSize: 64, Iterations: 1}},
		{"zero message size", Spec{Algorithm: datatypes.AlgorithmECC, Operation: datatypes.OperationSign, MessageSize: 0, Iterations: 1}},
		{"zero iterations", Spec{Algorithm: datatypes.AlgorithmECC, Operation: datatypes.OperationSign, MessageSize: 64, Iterations: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := runner.Run(context.Background(), tt.spec, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, datatypes.ErrInvalidRequest))
			assert.Empty(t, results)
		})
	}

	n, err := st.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n, "invalid specs must leave the log untouched")
}

func TestRun_YieldSeesResultsInOrder(t *testing.T) {
	runner, _ := newTestRunner(t)

	var yielded []datatypes.TrialResult
	results, err := runner.Run(context.Background(), Spec{
		Algorithm:   datatypes.AlgorithmECC,
		Operation:   datatypes.OperationKeyGen,
		MessageSize: 64,
		Iterations:  3,
	}, func(r datatypes.TrialResult) error {
		yielded = append(yielded, r)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, results, yielded, "yield order must match result order")
}

func TestRun_YieldErrorStopsRun(t *testing.T) {
	runner, st := newTestRunner(t)

	stop := errors.New("consumer gone")
	results, err := runner.Run(context.Background(), Spec{
		Algorithm:   datatypes.AlgorithmECC,
		Operation:   datatypes.OperationKeyGen,
		MessageSize: 64,
		Iterations:  10,
	}, func(r datatypes.TrialResult) error {
		return stop
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, stop))
	assert.Len(t, results, 1, "run stops after the yield that errored")

	// The already-recorded result stays in the store.
	n, nerr := st.Len()
	require.NoError(t, nerr)
	assert.Equal(t, 1, n)
}

func TestRun_CancellationBetweenIterations(t *testing.T) {
	runner, st := newTestRunner(t)

	ctx, cancel := context.WithCancel(context.Background())
	results, err := runner.Run(ctx, Spec{
		Algorithm:   datatypes.AlgorithmECC,
		Operation:   datatypes.OperationKeyGen,
		MessageSize: 64,
		Iterations:  100,
	}, func(r datatypes.TrialResult) error {
		cancel() // Next iteration's ctx check ends the run.
		return nil
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Len(t, results, 1)

	n, nerr := st.Len()
	require.NoError(t, nerr)
	assert.Equal(t, 1, n, "partial results survive cancellation")
}

func TestRun_EnvironmentFailureAborts(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()

	calls := 0
	adapter := NewAdapterWithFactory(func(alg datatypes.Algorithm) (crypto.Signer, error) {
		calls++
		if calls > 2 {
			return nil, errors.New("library fault")
		}
		return crypto.New(alg)
	})
	runner := NewRunner(adapter, st, nil)

	results, err := runner.Run(context.Background(), Spec{
		Algorithm:   datatypes.AlgorithmECC,
		Operation:   datatypes.OperationKeyGen,
		MessageSize: 64,
		Iterations:  10,
	}, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, datatypes.ErrEnvironment))
	assert.Len(t, results, 2, "results before the abort are kept")
}

func TestRunOnce(t *testing.T) {
	runner, st := newTestRunner(t)

	result, err := runner.RunOnce(context.Background(),
		datatypes.AlgorithmDilithium, datatypes.OperationSign, 128)
	require.NoError(t, err)

	assert.Equal(t, datatypes.AlgorithmDilithium, result.Algorithm)
	assert.Equal(t, datatypes.StatusSuccess, result.Status)
	assert.Positive(t, result.ExecutionTimeMs)

	n, err := st.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
