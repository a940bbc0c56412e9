// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package store provides the append-only trial result log.
//
// # Description
//
// A Store holds every TrialResult recorded in a session, in insertion order,
// until an explicit clear. There is exactly one log: the capped table view is
// a derived window over it (Recent), never a second collection. Aggregation
// and export always read the full log via All.
//
// Two implementations share the contract: MemoryStore (the default) and
// BadgerStore (opt-in embedded durability, see badger.go).
package store

import (
	"sync"

	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
)

// DisplayWindow is the default number of rows shown in the results table.
const DisplayWindow = 20

// Store is the append-only result log.
//
// Results are immutable once appended and are only removed by Clear. All and
// Recent return newest-first snapshots; mutating a snapshot never affects the
// log.
type Store interface {
	// Append adds one result to the log. O(1).
	Append(result datatypes.TrialResult) error

	// All returns the entire log, newest first.
	All() ([]datatypes.TrialResult, error)

	// Recent returns at most k results, newest first. k <= 0 returns the
	// default display window.
	Recent(k int) ([]datatypes.TrialResult, error)

	// Len returns the number of results in the log.
	Len() (int, error)

	// Clear removes every result. After Clear, All returns an empty slice.
	Clear() error

	// Close releases any resources held by the store.
	Close() error
}

// MemoryStore keeps the log in a mutex-guarded slice.
//
// # Thread Safety
//
// Safe for concurrent use. The mutex guards the slice, not run ordering;
// serializing whole runs is the runner's job.
type MemoryStore struct {
	mu      sync.Mutex
	results []datatypes.TrialResult
}

// NewMemoryStore returns an empty in-memory result log.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(result datatypes.TrialResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
	return nil
}

func (s *MemoryStore) All() ([]datatypes.TrialResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return reversed(s.results), nil
}

func (s *MemoryStore) Recent(k int) ([]datatypes.TrialResult, error) {
	if k <= 0 {
		k = DisplayWindow
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	all := reversed(s.results)
	if len(all) > k {
		all = all[:k]
	}
	return all, nil
}

func (s *MemoryStore) Len() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results), nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = nil
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// reversed copies results newest-first. Insertion order is oldest-first
// internally, so display order is the reverse.
func reversed(in []datatypes.TrialResult) []datatypes.TrialResult {
	out := make([]datatypes.TrialResult, len(in))
	for i, r := range in {
		out[len(in)-1-i] = r
	}
	return out
}
