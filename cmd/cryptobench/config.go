// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

// Config holds CLI defaults loaded from an optional cryptobench.yaml.
// Command-line flags override whatever the file sets.
type Config struct {
	// Iterations is the default trial count per algorithm/operation pair.
	Iterations int `yaml:"iterations"`

	// MessageSize is the default message payload size in bytes.
	MessageSize int `yaml:"message_size"`

	// PauseMs is the default pause between iterations in milliseconds.
	PauseMs int `yaml:"pause_ms"`

	// OutputDir is where exports are written. Default: current directory.
	OutputDir string `yaml:"output_dir"`

	// LogDir enables file logging when set.
	LogDir string `yaml:"log_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in defaults used when no config file
// exists.
func DefaultConfig() Config {
	return Config{
		Iterations:  10,
		MessageSize: 256,
		PauseMs:     0,
		OutputDir:   ".",
		LogLevel:    "info",
	}
}
