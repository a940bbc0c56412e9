// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package stats derives aggregate statistics from the trial result log.
package stats

import (
	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
	"github.com/AleutianAI/CryptoBench/services/benchmark/store"
)

// Averages recomputes per-(algorithm, operation) statistics from the full
// result log.
//
// # Description
//
// Every call walks the entire log: nothing is cached or incrementally
// maintained. Session logs are small, and recomputing from scratch means a
// clear immediately empties the statistics.
//
// Only successful trials contribute. A pair with zero successes has no map
// entry at all; failed trials stay in the log and in the CSV export but never
// skew a mean.
//
// # Outputs
//
//   - map[StatKey]AggregateStat: one entry per pair with at least one
//     success. Never nil.
//   - error: store read failure.
func Averages(st store.Store) (map[datatypes.StatKey]datatypes.AggregateStat, error) {
	results, err := st.All()
	if err != nil {
		return nil, err
	}

	type acc struct {
		count   int
		sumTime float64
		sumMem  float64
		minTime float64
		maxTime float64
	}
	accs := make(map[datatypes.StatKey]*acc)

	for _, r := range results {
		if !r.Succeeded() {
			continue
		}
		key := datatypes.StatKey{Algorithm: r.Algorithm, Operation: r.Operation}
		a, ok := accs[key]
		if !ok {
			a = &acc{minTime: r.ExecutionTimeMs, maxTime: r.ExecutionTimeMs}
			accs[key] = a
		}
		a.count++
		a.sumTime += r.ExecutionTimeMs
		a.sumMem += r.MemoryUsageKb
		if r.ExecutionTimeMs < a.minTime {
			a.minTime = r.ExecutionTimeMs
		}
		if r.ExecutionTimeMs > a.maxTime {
			a.maxTime = r.ExecutionTimeMs
		}
	}

	out := make(map[datatypes.StatKey]datatypes.AggregateStat, len(accs))
	for key, a := range accs {
		out[key] = datatypes.AggregateStat{
			Count:               a.count,
			MeanExecutionTimeMs: a.sumTime / float64(a.count),
			MeanMemoryUsageKb:   a.sumMem / float64(a.count),
			MinExecutionTimeMs:  a.minTime,
			MaxExecutionTimeMs:  a.maxTime,
		}
	}
	return out, nil
}

// ByAlgorithm regroups Averages output into the nested wire shape used by the
// statistics endpoint: algorithm -> operation -> stat.
func ByAlgorithm(flat map[datatypes.StatKey]datatypes.AggregateStat) map[datatypes.Algorithm]map[datatypes.Operation]datatypes.AggregateStat {
	out := make(map[datatypes.Algorithm]map[datatypes.Operation]datatypes.AggregateStat)
	for key, stat := range flat {
		if out[key.Algorithm] == nil {
			out[key.Algorithm] = make(map[datatypes.Operation]datatypes.AggregateStat)
		}
		out[key.Algorithm][key.Operation] = stat
	}
	return out
}
