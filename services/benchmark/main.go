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
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	// --- OpenTelemetry imports ---
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/AleutianAI/CryptoBench/services/benchmark/bench"
	"github.com/AleutianAI/CryptoBench/services/benchmark/middleware"
	"github.com/AleutianAI/CryptoBench/services/benchmark/observability"
	"github.com/AleutianAI/CryptoBench/services/benchmark/routes"
	"github.com/AleutianAI/CryptoBench/services/benchmark/store"
)

func initTracer() (func(context.Context), error) {
	ctx := context.Background()

	otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otelEndpoint == "" {
		otelEndpoint = "cryptobench-otel-collector:4317"
	}
	conn, err := grpc.NewClient(otelEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("benchmark-service")))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.
		TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

// buildStore selects the result log backend from the environment.
//
// BENCHMARK_STORE=badger enables the durable log at BENCHMARK_BADGER_PATH;
// anything else (including unset) uses the in-memory log, which is the
// default: a benchmarking session normally lives and dies with the process.
func buildStore() (store.Store, error) {
	if os.Getenv("BENCHMARK_STORE") != "badger" {
		return store.NewMemoryStore(), nil
	}
	path := os.Getenv("BENCHMARK_BADGER_PATH")
	if path == "" {
		path = "/var/lib/cryptobench/results"
	}
	cfg := store.DefaultBadgerConfig(path)
	cfg.Logger = slog.Default()
	return store.OpenBadgerStore(cfg)
}

func main() {
	port := os.Getenv("BENCHMARK_PORT")
	if port == "" {
		port = "12310"
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// --- Init the tracer ---
	cleanup, err := initTracer()
	if err != nil {
		log.Fatalf("failed to setup the OTLP tracer: %v", err)
	}
	defer cleanup(context.Background())

	st, err := buildStore()
	if err != nil {
		log.Fatalf("failed to open the result store: %v", err)
	}
	defer st.Close()

	metrics := observability.InitMetrics()
	runner := bench.NewRunner(bench.NewAdapter(), st, slog.Default())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("benchmark-service"))
	router.Use(middleware.RequestLogger())

	routes.SetupRoutes(router, runner, st, metrics)

	slog.Info("benchmark service listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("benchmark service failed: %v", err)
	}
}
