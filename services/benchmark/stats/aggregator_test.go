// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for statistics aggregation

package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
	"github.com/AleutianAI/CryptoBench/services/benchmark/store"
)

func seed(t *testing.T, st store.Store, alg datatypes.Algorithm, op datatypes.Operation, status datatypes.Status, timeMs, memKb float64) {
	t.Helper()
	require.NoError(t, st.Append(datatypes.TrialResult{
		ID:              "x",
		Algorithm:       alg,
		Operation:       op,
		MessageSize:     256,
		ExecutionTimeMs: timeMs,
		MemoryUsageKb:   memKb,
		Status:          status,
	}))
}

func TestAverages_Means(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()

	seed(t, st, datatypes.AlgorithmECC, datatypes.OperationSign, datatypes.StatusSuccess, 3.0, 10.0)
	seed(t, st, datatypes.AlgorithmECC, datatypes.OperationSign, datatypes.StatusSuccess, 5.0, 20.0)
	seed(t, st, datatypes.AlgorithmDilithium, datatypes.OperationVerify, datatypes.StatusSuccess, 100.0, 50.0)

	flat, err := Averages(st)
	require.NoError(t, err)
	require.Len(t, flat, 2)

	ecc := flat[datatypes.StatKey{Algorithm: datatypes.AlgorithmECC, Operation: datatypes.OperationSign}]
	assert.Equal(t, 2, ecc.Count)
	assert.InDelta(t, 4.0, ecc.MeanExecutionTimeMs, 1e-9)
	assert.InDelta(t, 15.0, ecc.MeanMemoryUsageKb, 1e-9)
	assert.InDelta(t, 3.0, ecc.MinExecutionTimeMs, 1e-9)
	assert.InDelta(t, 5.0, ecc.MaxExecutionTimeMs, 1e-9)

	dil := flat[datatypes.StatKey{Algorithm: datatypes.AlgorithmDilithium, Operation: datatypes.OperationVerify}]
	assert.Equal(t, 1, dil.Count)
	assert.InDelta(t, 100.0, dil.MeanExecutionTimeMs, 1e-9)
	assert.InDelta(t, 100.0, dil.MinExecutionTimeMs, 1e-9)
	assert.InDelta(t, 100.0, dil.MaxExecutionTimeMs, 1e-9)
}

func TestAverages_FailuresExcluded(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()

	seed(t, st, datatypes.AlgorithmECC, datatypes.OperationSign, datatypes.StatusSuccess, 2.0, 8.0)
	seed(t, st, datatypes.AlgorithmECC, datatypes.OperationSign, datatypes.StatusFailure, 999.0, 999.0)

	flat, err := Averages(st)
	require.NoError(t, err)

	stat := flat[datatypes.StatKey{Algorithm: datatypes.AlgorithmECC, Operation: datatypes.OperationSign}]
	assert.Equal(t, 1, stat.Count, "failed trials must not contribute")
	assert.InDelta(t, 2.0, stat.MeanExecutionTimeMs, 1e-9)
	assert.InDelta(t, 2.0, stat.MaxExecutionTimeMs, 1e-9)
}

func TestAverages_NoSuccessesMeansNoEntry(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()

	seed(t, st, datatypes.AlgorithmDilithium, datatypes.OperationKeyGen, datatypes.StatusFailure, 1.0, 1.0)

	flat, err := Averages(st)
	require.NoError(t, err)

	_, ok := flat[datatypes.StatKey{Algorithm: datatypes.AlgorithmDilithium, Operation: datatypes.OperationKeyGen}]
	assert.False(t, ok, "a pair with zero successes has no stat, not a zero stat")
}

func TestAverages_EmptyLog(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()

	flat, err := Averages(st)
	require.NoError(t, err)
	assert.NotNil(t, flat)
	assert.Empty(t, flat)
}

func TestAverages_ReflectsClear(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()

	seed(t, st, datatypes.AlgorithmECC, datatypes.OperationKeyGen, datatypes.StatusSuccess, 1.0, 1.0)
	require.NoError(t, st.Clear())

	flat, err := Averages(st)
	require.NoError(t, err)
	assert.Empty(t, flat, "statistics recompute from the log, so a clear empties them")
}

func TestByAlgorithm(t *testing.T) {
	flat := map[datatypes.StatKey]datatypes.AggregateStat{
		{Algorithm: datatypes.AlgorithmECC, Operation: datatypes.OperationSign}:       {Count: 1},
		{Algorithm: datatypes.AlgorithmECC, Operation: datatypes.OperationVerify}:     {Count: 2},
		{Algorithm: datatypes.AlgorithmDilithium, Operation: datatypes.OperationSign}: {Count: 3},
	}

	nested := ByAlgorithm(flat)
	require.Len(t, nested, 2)
	assert.Equal(t, 1, nested[datatypes.AlgorithmECC][datatypes.OperationSign].Count)
	assert.Equal(t, 2, nested[datatypes.AlgorithmECC][datatypes.OperationVerify].Count)
	assert.Equal(t, 3, nested[datatypes.AlgorithmDilithium][datatypes.OperationSign].Count)
}
