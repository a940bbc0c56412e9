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

// runSuiteCommand benchmarks every algorithm/operation pair and prints a
// comparison table.
func runSuiteCommand(cmd *cobra.Command, args []string) error {
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

	total := len(datatypes.Algorithms()) * len(datatypes.Operations())
	done := 0

	for _, alg := range datatypes.Algorithms() {
		for _, op := range datatypes.Operations() {
			done++
			fmt.Printf("[%d/%d] %s/%s: %d iterations... ", done, total, alg, op, opts.Iterations)

			spec := bench.Spec{
				Algorithm:   alg,
				Operation:   op,
				MessageSize: opts.MessageSize,
				Iterations:  opts.Iterations,
				Pause:       time.Duration(opts.PauseMs) * time.Millisecond,
			}

			results, err := runner.Run(ctx, spec, nil)
			if err != nil {
				if ctx.Err() != nil {
					fmt.Println("interrupted")
					fmt.Fprintln(os.Stderr, "\nInterrupted; partial results follow.")
					goto summary
				}
				return fmt.Errorf("suite aborted at %s/%s: %w", alg, op, err)
			}

			failures := 0
			for _, r := range results {
				if !r.Succeeded() {
					failures++
				}
			}
			if failures > 0 {
				fmt.Printf("done (%d failures)\n", failures)
			} else {
				fmt.Println("done")
			}
		}
	}

summary:
	flat, err := stats.Averages(st)
	if err != nil {
		return fmt.Errorf("computing statistics: %w", err)
	}

	fmt.Println()
	printStatsTable(os.Stdout, flat)

	return exportResults(st, flat, opts)
}
