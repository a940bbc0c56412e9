// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/AleutianAI/CryptoBench/services/benchmark/bench"
	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
	"github.com/AleutianAI/CryptoBench/services/benchmark/observability"
)

var benchTracer = otel.Tracer("cryptobench.benchmark.handlers")

// HandleRunBenchmark executes a benchmark run and returns all its results.
//
// POST /v1/benchmark/run
//
// A run of N iterations blocks until complete; per-iteration feedback is
// available on the websocket variant. Invalid parameters are rejected before
// any trial executes and append nothing to the log.
func HandleRunBenchmark(runner *bench.Runner, metrics *observability.TrialMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := benchTracer.Start(c.Request.Context(), "HandleRunBenchmark")
		defer span.End()

		var req datatypes.RunBenchmarkRequest
		if err := c.BindJSON(&req); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Failed to parse the benchmark request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			slog.Warn("Rejected benchmark request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		req.EnsureDefaults()

		spec := bench.Spec{
			Algorithm:   datatypes.Algorithm(req.Algorithm),
			Operation:   datatypes.Operation(req.Operation),
			MessageSize: req.MessageSize,
			Iterations:  req.Iterations,
			Pause:       time.Duration(req.PauseMs) * time.Millisecond,
		}

		metrics.RunStarted()
		defer metrics.RunEnded()

		started := time.Now().UTC()
		results, err := runner.Run(ctx, spec, func(r datatypes.TrialResult) error {
			metrics.RecordTrial(r)
			return nil
		})
		if n, lenErr := runner.Store().Len(); lenErr == nil {
			metrics.SetLogSize(n)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			switch {
			case errors.Is(err, datatypes.ErrInvalidRequest):
				metrics.RecordRun(observability.OutcomeInvalid)
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.Is(err, context.Canceled):
				metrics.RecordRun(observability.OutcomeCancelled)
				slog.Warn("Benchmark run cancelled by client", "request_id", req.RequestID)
				// Client is gone; nothing useful to write.
			default:
				metrics.RecordRun(observability.OutcomeAborted)
				slog.Error("Benchmark run aborted", "request_id", req.RequestID, "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		metrics.RecordRun(observability.OutcomeCompleted)

		c.JSON(http.StatusOK, datatypes.RunBenchmarkResponse{
			RequestID:  req.RequestID,
			StartedAt:  started,
			DurationMs: float64(time.Since(started).Nanoseconds()) / 1e6,
			Results:    results,
		})
	}
}
