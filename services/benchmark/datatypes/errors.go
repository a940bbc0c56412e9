// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package datatypes

import "errors"

// Error categories for the benchmark pipeline.
//
// There are exactly two error categories that surface as Go errors:
//
//   - ErrInvalidRequest: bad algorithm/operation codes, non-positive message
//     sizes or iteration counts. Fails fast, before any timer starts and
//     before anything is appended to the result log. Maps to HTTP 400.
//   - ErrEnvironment: the measurement environment itself is unusable (signer
//     library failed to initialize). Aborts the current run with no partial
//     result for the aborted iteration. Maps to HTTP 500.
//
// A failing cryptographic primitive is NOT an error: it is recorded as a
// TrialResult with StatusFailure and retained in the log like any other
// result. No component retries anything; each trial is attempted exactly once.
var (
	ErrInvalidRequest = errors.New("invalid benchmark request")
	ErrEnvironment    = errors.New("benchmark environment failure")
)
