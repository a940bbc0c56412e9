// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
)

// resultKeyPrefix namespaces trial result keys inside the database.
var resultKeyPrefix = []byte("trial/")

// BadgerConfig holds configuration for the durable result log.
type BadgerConfig struct {
	// Path is the directory for BadgerDB files.
	// Required unless InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence).
	// Useful for testing.
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// Logger is the logger for BadgerDB operations.
	// If nil, BadgerDB's internal logging is disabled.
	Logger *slog.Logger
}

// DefaultBadgerConfig returns production defaults: synchronous writes,
// persistent storage.
func DefaultBadgerConfig(path string) BadgerConfig {
	return BadgerConfig{Path: path, SyncWrites: true}
}

// InMemoryBadgerConfig returns a configuration for tests: in-memory, no sync.
func InMemoryBadgerConfig() BadgerConfig {
	return BadgerConfig{InMemory: true}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// BadgerStore is the durable Store implementation on BadgerDB.
//
// # Description
//
// Results are stored as JSON under monotonically increasing big-endian
// sequence keys, so Badger's natural key order is insertion order and All can
// iterate in reverse for the newest-first view. A full clear drops the key
// range and resets the sequence.
//
// The contract is identical to MemoryStore; durability is a deployment
// choice, not a behavioral one.
//
// # Thread Safety
//
// Safe for concurrent use. The sequence counter is mutex-guarded; Badger
// transactions handle the rest.
type BadgerStore struct {
	db *badger.DB

	mu  sync.Mutex
	seq uint64
}

// OpenBadgerStore opens (or creates) a durable result log.
//
// # Inputs
//
//   - cfg: Database configuration. Path is required unless InMemory is true.
//
// # Outputs
//
//   - *BadgerStore: The opened store. Caller must Close when done.
//   - error: Non-nil if the path is invalid or the database cannot open.
func OpenBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent result log")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create result log directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open result log database: %w", err)
	}

	s := &BadgerStore{db: db}
	if err := s.restoreSequence(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// restoreSequence scans for the highest existing key so appends after a
// restart continue the sequence instead of overwriting.
func (s *BadgerStore) restoreSequence() error {
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Reverse: true, Prefix: resultKeyPrefix})
		defer it.Close()
		it.Seek(append(resultKeyPrefix, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff))
		if it.ValidForPrefix(resultKeyPrefix) {
			key := it.Item().Key()
			s.seq = binary.BigEndian.Uint64(key[len(resultKeyPrefix):])
		}
		return nil
	})
}

func (s *BadgerStore) nextKey() []byte {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	key := make([]byte, len(resultKeyPrefix)+8)
	copy(key, resultKeyPrefix)
	binary.BigEndian.PutUint64(key[len(resultKeyPrefix):], seq)
	return key
}

func (s *BadgerStore) Append(result datatypes.TrialResult) error {
	value, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal trial result: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.nextKey(), value)
	})
}

func (s *BadgerStore) All() ([]datatypes.TrialResult, error) {
	return s.scan(0)
}

func (s *BadgerStore) Recent(k int) ([]datatypes.TrialResult, error) {
	if k <= 0 {
		k = DisplayWindow
	}
	return s.scan(k)
}

// scan iterates the key range in reverse so results come out newest first.
// limit <= 0 means the whole log.
func (s *BadgerStore) scan(limit int) ([]datatypes.TrialResult, error) {
	var results []datatypes.TrialResult
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.IteratorOptions{Reverse: true, Prefix: resultKeyPrefix, PrefetchValues: true}
		it := txn.NewIterator(opts)
		defer it.Close()
		it.Seek(append(resultKeyPrefix, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff))
		for ; it.ValidForPrefix(resultKeyPrefix); it.Next() {
			if limit > 0 && len(results) >= limit {
				break
			}
			err := it.Item().Value(func(val []byte) error {
				var r datatypes.TrialResult
				if err := json.Unmarshal(val, &r); err != nil {
					return fmt.Errorf("unmarshal trial result: %w", err)
				}
				results = append(results, r)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []datatypes.TrialResult{}
	}
	return results, nil
}

func (s *BadgerStore) Len() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.IteratorOptions{Prefix: resultKeyPrefix}
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(resultKeyPrefix); it.ValidForPrefix(resultKeyPrefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

func (s *BadgerStore) Clear() error {
	err := s.db.DropPrefix(resultKeyPrefix)
	if err != nil {
		return fmt.Errorf("clear result log: %w", err)
	}
	s.mu.Lock()
	s.seq = 0
	s.mu.Unlock()
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
