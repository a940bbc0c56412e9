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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/CryptoBench/services/benchmark/bench"
	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
	"github.com/AleutianAI/CryptoBench/services/benchmark/stats"
	"github.com/AleutianAI/CryptoBench/services/benchmark/store"
)

// runBenchmarkCommand executes a single algorithm/operation benchmark and
// prints per-trial lines followed by an aggregate summary.
func runBenchmarkCommand(cmd *cobra.Command, args []string) error {
	alg, err := datatypes.ParseAlgorithm(args[0])
	if err != nil {
		return err
	}
	op, err := datatypes.ParseOperation(args[1])
	if err != nil {
		return err
	}

	opts, err := resolveRunOptions()
	if err != nil {
		return err
	}

	logger := newCLILogger()
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := store.NewMemoryStore()
	defer st.Close()
	runner := bench.NewRunner(bench.NewAdapter(), st, logger.Slog())

	spec := bench.Spec{
		Algorithm:   alg,
		Operation:   op,
		MessageSize: opts.MessageSize,
		Iterations:  opts.Iterations,
		Pause:       time.Duration(opts.PauseMs) * time.Millisecond,
	}

	fmt.Printf("Running %s/%s: %d iterations, %d byte messages\n\n",
		alg, op, spec.Iterations, spec.MessageSize)

	iteration := 0
	_, err = runner.Run(ctx, spec, func(r datatypes.TrialResult) error {
		iteration++
		printTrialLine(os.Stdout, iteration, r)
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			fmt.Fprintf(os.Stderr, "\nInterrupted after %d iterations; partial results follow.\n", iteration)
		} else {
			return fmt.Errorf("benchmark run failed: %w", err)
		}
	}

	flat, aerr := stats.Averages(st)
	if aerr != nil {
		return fmt.Errorf("computing statistics: %w", aerr)
	}

	fmt.Println()
	printStatsTable(os.Stdout, flat)

	return exportResults(st, flat, opts)
}
