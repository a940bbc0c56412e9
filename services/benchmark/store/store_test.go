// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the result log implementations

package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
)

func trialN(n int) datatypes.TrialResult {
	return datatypes.TrialResult{
		ID:              fmt.Sprintf("trial-%03d", n),
		Timestamp:       time.Date(2025, 6, 1, 0, 0, n, 0, time.UTC),
		Algorithm:       datatypes.AlgorithmECC,
		Operation:       datatypes.OperationSign,
		MessageSize:     256,
		ExecutionTimeMs: float64(n),
		MemoryUsageKb:   float64(n) * 2,
		Status:          datatypes.StatusSuccess,
	}
}

// storeContract runs the behavior shared by both implementations.
func storeContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("empty store", func(t *testing.T) {
		st := newStore(t)

		n, err := st.Len()
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		all, err := st.All()
		require.NoError(t, err)
		assert.Empty(t, all)

		recent, err := st.Recent(DisplayWindow)
		require.NoError(t, err)
		assert.Empty(t, recent)
	})

	t.Run("append and read newest first", func(t *testing.T) {
		st := newStore(t)

		for i := 1; i <= 5; i++ {
			require.NoError(t, st.Append(trialN(i)))
		}

		all, err := st.All()
		require.NoError(t, err)
		require.Len(t, all, 5)
		for i, r := range all {
			assert.Equal(t, fmt.Sprintf("trial-%03d", 5-i), r.ID, "All must return newest first")
		}
	})

	t.Run("recent window", func(t *testing.T) {
		st := newStore(t)

		for i := 1; i <= 30; i++ {
			require.NoError(t, st.Append(trialN(i)))
		}

		recent, err := st.Recent(DisplayWindow)
		require.NoError(t, err)
		require.Len(t, recent, DisplayWindow)
		assert.Equal(t, "trial-030", recent[0].ID)
		assert.Equal(t, "trial-011", recent[DisplayWindow-1].ID)

		// Window larger than the log returns everything.
		recent, err = st.Recent(100)
		require.NoError(t, err)
		assert.Len(t, recent, 30)
	})

	t.Run("clear", func(t *testing.T) {
		st := newStore(t)

		for i := 1; i <= 3; i++ {
			require.NoError(t, st.Append(trialN(i)))
		}
		require.NoError(t, st.Clear())

		n, err := st.Len()
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		// The log accepts appends again after a clear.
		require.NoError(t, st.Append(trialN(99)))
		all, err := st.All()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "trial-099", all[0].ID)
	})

	t.Run("round trips all fields", func(t *testing.T) {
		st := newStore(t)

		want := datatypes.TrialResult{
			ID:              "full-fields",
			Timestamp:       time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC),
			Algorithm:       datatypes.AlgorithmDilithium,
			Operation:       datatypes.OperationVerify,
			MessageSize:     1024,
			ExecutionTimeMs: 1.2345,
			MemoryUsageKb:   67.89,
			Status:          datatypes.StatusFailure,
			ErrorMessage:    "signature verification failed",
		}
		require.NoError(t, st.Append(want))

		all, err := st.All()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, want, all[0])
	})
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, func(t *testing.T) Store {
		st := NewMemoryStore()
		t.Cleanup(func() { st.Close() })
		return st
	})
}

func TestMemoryStore_ConcurrentAppends(t *testing.T) {
	st := NewMemoryStore()
	defer st.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_ = st.Append(trialN(n*10 + j))
			}
		}(i)
	}
	wg.Wait()

	n, err := st.Len()
	require.NoError(t, err)
	assert.Equal(t, 100, n)
}

func TestMemoryStore_AllReturnsCopy(t *testing.T) {
	st := NewMemoryStore()
	defer st.Close()

	require.NoError(t, st.Append(trialN(1)))
	all, err := st.All()
	require.NoError(t, err)

	all[0].ID = "mutated"

	again, err := st.All()
	require.NoError(t, err)
	assert.Equal(t, "trial-001", again[0].ID, "callers must not be able to mutate the log")
}
