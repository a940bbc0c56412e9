// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation utilities for user-provided
// benchmark parameters.
//
// This package contains validators for inputs that reach file paths or
// benchmark configuration, shared between the CLI and the service layer.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Parameter bounds for a single benchmark run. Message sizes below 32 bytes
// are not representative of real payloads; sizes above 4 KiB add nothing for
// signature benchmarks since both schemes hash-then-sign.
const (
	MinMessageSize = 32
	MaxMessageSize = 4096
	MaxIterations  = 1000
)

// ValidateMessageSize checks that a message size in bytes falls within the
// supported range [32, 4096].
//
// Example:
//
//	if err := validation.ValidateMessageSize(size); err != nil {
//	    return fmt.Errorf("invalid --message-size: %w", err)
//	}
func ValidateMessageSize(size int) error {
	if size < MinMessageSize || size > MaxMessageSize {
		return fmt.Errorf("message size must be between %d and %d bytes, got %d",
			MinMessageSize, MaxMessageSize, size)
	}
	return nil
}

// ValidateIterations checks that an iteration count falls within [1, 1000].
// The cap keeps a single run bounded; larger experiments should be split
// into multiple runs.
func ValidateIterations(n int) error {
	if n < 1 || n > MaxIterations {
		return fmt.Errorf("iterations must be between 1 and %d, got %d", MaxIterations, n)
	}
	return nil
}

// filenamePattern matches safe output filename stems.
// Allows: letters, digits, dots, hyphens, underscores. Max 128 characters.
var filenamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._\-]{0,127}$`)

// ValidateOutputName validates a user-supplied output filename to prevent
// path traversal when the CLI writes CSV or PNG exports.
//
// Valid names:
//   - 1-128 characters
//   - Letters, digits, dots, hyphens, underscores
//   - No path separators, no leading dot or hyphen
//
// Returns an error if the name is invalid.
func ValidateOutputName(name string) error {
	if name == "" {
		return fmt.Errorf("output name cannot be empty")
	}

	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("output name must not contain path separators: %q", name)
	}

	if !filenamePattern.MatchString(name) {
		return fmt.Errorf("invalid output name: %q (must be 1-128 alphanumeric chars, dots, hyphens, or underscores)", name)
	}

	return nil
}
