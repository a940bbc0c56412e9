// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides Prometheus metrics for the benchmark
// service.
//
// # Description
//
// Metrics cover the trial pipeline: trial counters by algorithm, operation,
// and status; histograms of measured primitive cost; and a gauge of in-flight
// runs. Exposed on /metrics for Prometheus scraping.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
)

const metricsNamespace = "cryptobench"

const trialSubsystem = "trials"

// TrialMetrics holds all Prometheus metrics for the benchmark pipeline.
//
// Initialize once at startup via InitMetrics.
type TrialMetrics struct {
	// TrialsTotal counts recorded trials.
	// Labels: algorithm, operation, status
	TrialsTotal *prometheus.CounterVec

	// ExecutionMs observes measured primitive cost in milliseconds.
	// Labels: algorithm, operation
	ExecutionMs *prometheus.HistogramVec

	// RunsTotal counts benchmark runs by outcome.
	// Labels: outcome (completed, invalid, aborted, cancelled)
	RunsTotal *prometheus.CounterVec

	// ActiveRuns tracks in-flight benchmark runs.
	ActiveRuns prometheus.Gauge

	// LogSize tracks the current result log length.
	LogSize prometheus.Gauge
}

// DefaultMetrics is the singleton instance of TrialMetrics.
// Initialized by InitMetrics().
var DefaultMetrics *TrialMetrics

var metricsOnce sync.Once

// InitMetrics creates and registers all metrics with the default registry.
// Registration happens once; later calls return the existing instance.
func InitMetrics() *TrialMetrics {
	metricsOnce.Do(initMetrics)
	return DefaultMetrics
}

func initMetrics() {
	DefaultMetrics = &TrialMetrics{
		TrialsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: trialSubsystem,
				Name:      "total",
				Help:      "Total trials recorded by algorithm, operation, and status",
			},
			[]string{"algorithm", "operation", "status"},
		),

		ExecutionMs: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: trialSubsystem,
				Name:      "execution_ms",
				Help:      "Measured primitive execution time in milliseconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100, 500},
			},
			[]string{"algorithm", "operation"},
		),

		RunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: trialSubsystem,
				Name:      "runs_total",
				Help:      "Benchmark runs by outcome",
			},
			[]string{"outcome"},
		),

		ActiveRuns: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: trialSubsystem,
				Name:      "active_runs",
				Help:      "Benchmark runs currently executing",
			},
		),

		LogSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: trialSubsystem,
				Name:      "log_size",
				Help:      "Current number of results in the log",
			},
		),
	}
}

// RunOutcome categorizes how a benchmark run ended for metrics labeling.
type RunOutcome string

const (
	OutcomeCompleted RunOutcome = "completed"
	OutcomeInvalid   RunOutcome = "invalid"
	OutcomeAborted   RunOutcome = "aborted"
	OutcomeCancelled RunOutcome = "cancelled"
)

// RecordTrial records one completed trial.
func (m *TrialMetrics) RecordTrial(r datatypes.TrialResult) {
	m.TrialsTotal.WithLabelValues(
		string(r.Algorithm), string(r.Operation), string(r.Status)).Inc()
	m.ExecutionMs.WithLabelValues(
		string(r.Algorithm), string(r.Operation)).Observe(r.ExecutionTimeMs)
}

// RecordRun records a finished run by outcome.
func (m *TrialMetrics) RecordRun(outcome RunOutcome) {
	m.RunsTotal.WithLabelValues(string(outcome)).Inc()
}

// RunStarted increments the active run gauge.
func (m *TrialMetrics) RunStarted() {
	m.ActiveRuns.Inc()
}

// RunEnded decrements the active run gauge.
func (m *TrialMetrics) RunEnded() {
	m.ActiveRuns.Dec()
}

// SetLogSize updates the result log length gauge.
func (m *TrialMetrics) SetLogSize(n int) {
	m.LogSize.Set(float64(n))
}
