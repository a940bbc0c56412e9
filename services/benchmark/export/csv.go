// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package export renders the result log for consumers: CSV serialization,
// chart datasets, and server-side chart images.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
)

// CSVHeader is the fixed column order of every export.
var CSVHeader = []string{
	"timestamp",
	"algorithm",
	"operation",
	"message_size_bytes",
	"execution_time_ms",
	"memory_usage_kb",
	"status",
}

// WriteCSV serializes results to w, header row first.
//
// # Description
//
// Always operates on the full log the caller passes in, never a display
// window. Time and memory are fixed to 4 decimal places; timestamps use
// RFC 3339 with nanoseconds so a re-parse reproduces the original instant.
// Field values are enum codes, integers, and fixed-decimal floats, so no CSV
// escaping is ever needed.
func WriteCSV(w io.Writer, results []datatypes.TrialResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range results {
		record := []string{
			r.Timestamp.Format(time.RFC3339Nano),
			string(r.Algorithm),
			string(r.Operation),
			strconv.Itoa(r.MessageSize),
			strconv.FormatFloat(r.ExecutionTimeMs, 'f', 4, 64),
			strconv.FormatFloat(r.MemoryUsageKb, 'f', 4, 64),
			string(r.Status),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVFilename builds the export attachment name for a given instant:
// crypto_benchmark_<ISO 8601, colons replaced with hyphens>.csv.
//
// Colons are illegal in filenames on some platforms, hence the substitution.
func CSVFilename(now time.Time) string {
	stamp := strings.ReplaceAll(now.UTC().Format(time.RFC3339), ":", "-")
	return fmt.Sprintf("crypto_benchmark_%s.csv", stamp)
}
