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

import (
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "cryptobench",
		Short: "A CLI to benchmark classical and post-quantum signature schemes",
		Long: `Cryptobench measures execution time and memory usage of ECDSA P-256
and ML-DSA-44 (Dilithium) key generation, signing, and verification,
and exports the results as tables, CSV files, and charts.`,
	}

	configPath string

	runCmd = &cobra.Command{
		Use:   "run [algorithm] [operation]",
		Short: "Run a benchmark for one algorithm/operation pair",
		Long: `Runs the given operation (keygen, sign, or verify) for the given
algorithm (ecc or dilithium) and prints per-trial results followed by
aggregate statistics.`,
		Args: cobra.ExactArgs(2),
		RunE: runBenchmarkCommand,
	}

	suiteCmd = &cobra.Command{
		Use:   "suite",
		Short: "Run the full benchmark suite across all algorithms and operations",
		Long: `Runs every algorithm/operation combination with the configured
iteration count, prints a comparison table, and optionally exports
CSV and chart files.`,
		RunE: runSuiteCommand,
	}

	profilesCmd = &cobra.Command{
		Use:   "profiles",
		Short: "Show reference data for the supported signature algorithms",
		Run:   runProfilesCommand,
	}

	iterations  int
	messageSize int
	pauseMs     int
	csvOut      string
	chartOut    string
	outputDir   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "cryptobench.yaml", "Path to the CLI config file")

	for _, cmd := range []*cobra.Command{runCmd, suiteCmd} {
		cmd.Flags().IntVarP(&iterations, "iterations", "n", 0, "Trials per algorithm/operation pair (1-1000)")
		cmd.Flags().IntVarP(&messageSize, "message-size", "m", 0, "Message payload size in bytes (32-4096)")
		cmd.Flags().IntVar(&pauseMs, "pause-ms", -1, "Pause between iterations in milliseconds")
		cmd.Flags().StringVar(&csvOut, "csv", "", "Export results to the named CSV file")
		cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for exported files")
	}
	suiteCmd.Flags().StringVar(&chartOut, "chart", "", "Export a mean-time comparison chart to the named PNG file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(suiteCmd)
	rootCmd.AddCommand(profilesCmd)
}
