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
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/AleutianAI/CryptoBench/pkg/logging"
	"github.com/AleutianAI/CryptoBench/pkg/validation"
	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
	"github.com/AleutianAI/CryptoBench/services/benchmark/export"
	"github.com/AleutianAI/CryptoBench/services/benchmark/store"
)

// runOptions are the effective parameters for a run after merging config
// file values with command-line flags.
type runOptions struct {
	Iterations  int
	MessageSize int
	PauseMs     int
	CSVOut      string
	ChartOut    string
	OutputDir   string
}

// resolveRunOptions merges flags over config defaults and validates the
// result. Flags win when set; zero/sentinel flag values fall back to config.
func resolveRunOptions() (runOptions, error) {
	opts := runOptions{
		Iterations:  config.Iterations,
		MessageSize: config.MessageSize,
		PauseMs:     config.PauseMs,
		CSVOut:      csvOut,
		ChartOut:    chartOut,
		OutputDir:   config.OutputDir,
	}
	if iterations > 0 {
		opts.Iterations = iterations
	}
	if messageSize > 0 {
		opts.MessageSize = messageSize
	}
	if pauseMs >= 0 {
		opts.PauseMs = pauseMs
	}
	if outputDir != "" {
		opts.OutputDir = outputDir
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}

	if err := validation.ValidateIterations(opts.Iterations); err != nil {
		return runOptions{}, err
	}
	if err := validation.ValidateMessageSize(opts.MessageSize); err != nil {
		return runOptions{}, err
	}
	if opts.CSVOut != "" {
		if err := validation.ValidateOutputName(opts.CSVOut); err != nil {
			return runOptions{}, fmt.Errorf("invalid --csv: %w", err)
		}
	}
	if opts.ChartOut != "" {
		if err := validation.ValidateOutputName(opts.ChartOut); err != nil {
			return runOptions{}, fmt.Errorf("invalid --chart: %w", err)
		}
	}
	return opts, nil
}

// newCLILogger builds the CLI logger from config. Errors in log setup are
// not fatal; the logger falls back to stderr.
func newCLILogger() *logging.Logger {
	level := logging.LevelInfo
	switch config.LogLevel {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}
	return logging.New(logging.Config{
		Level:   level,
		LogDir:  config.LogDir,
		Service: "cli",
		Quiet:   config.LogDir != "",
	})
}

// printTrialLine writes a single per-iteration result line.
func printTrialLine(w io.Writer, iteration int, r datatypes.TrialResult) {
	if r.Succeeded() {
		fmt.Fprintf(w, "  #%-4d %10.4f ms  %10.4f KB\n",
			iteration, r.ExecutionTimeMs, r.MemoryUsageKb)
		return
	}
	fmt.Fprintf(w, "  #%-4d FAILED after %.4f ms: %s\n",
		iteration, r.ExecutionTimeMs, r.ErrorMessage)
}

// printStatsTable renders aggregate statistics as an aligned text table in
// fixed algorithm/operation order.
func printStatsTable(w io.Writer, flat map[datatypes.StatKey]datatypes.AggregateStat) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tOPERATION\tTRIALS\tMEAN TIME (MS)\tMEAN MEM (KB)\tMIN (MS)\tMAX (MS)")

	for _, alg := range datatypes.Algorithms() {
		for _, op := range datatypes.Operations() {
			stat, ok := flat[datatypes.StatKey{Algorithm: alg, Operation: op}]
			if !ok {
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\n",
				alg, op, stat.Count,
				stat.MeanExecutionTimeMs, stat.MeanMemoryUsageKb,
				stat.MinExecutionTimeMs, stat.MaxExecutionTimeMs)
		}
	}
	tw.Flush()
}

// exportResults writes the CSV and chart files requested by opts.
func exportResults(st store.Store, flat map[datatypes.StatKey]datatypes.AggregateStat, opts runOptions) error {
	if opts.CSVOut != "" {
		results, err := st.All()
		if err != nil {
			return fmt.Errorf("reading results for export: %w", err)
		}

		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, results); err != nil {
			return fmt.Errorf("encoding CSV: %w", err)
		}

		path := filepath.Join(opts.OutputDir, opts.CSVOut)
		if err := os.WriteFile(path, buf.Bytes(), 0640); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("\nWrote %d results to %s\n", len(results), path)
	}

	if opts.ChartOut != "" {
		png, err := export.RenderPNG(export.ChartDataset(flat))
		if err != nil {
			return fmt.Errorf("rendering chart: %w", err)
		}

		path := filepath.Join(opts.OutputDir, opts.ChartOut)
		if err := os.WriteFile(path, png, 0640); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("Wrote chart to %s\n", path)
	}

	return nil
}
