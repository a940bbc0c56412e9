// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AleutianAI/CryptoBench/services/benchmark/bench"
	"github.com/AleutianAI/CryptoBench/services/benchmark/handlers"
	"github.com/AleutianAI/CryptoBench/services/benchmark/observability"
	"github.com/AleutianAI/CryptoBench/services/benchmark/store"
)

// SetupRoutes registers the benchmark API on the router.
func SetupRoutes(router *gin.Engine, runner *bench.Runner, st store.Store,
	metrics *observability.TrialMetrics) {

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1 group
	v1 := router.Group("/v1")
	{
		v1.POST("/benchmark/run", handlers.HandleRunBenchmark(runner, metrics))
		v1.GET("/benchmark/run/ws", handlers.HandleRunWebSocket(runner, metrics))
		v1.GET("/algorithms", handlers.HandleListAlgorithms())

		results := v1.Group("/results")
		{
			results.GET("", handlers.HandleGetResults(st))
			results.GET("/table", handlers.HandleGetResultsTable(st))
			results.GET("/export", handlers.HandleExportCSV(st))
			results.DELETE("", handlers.HandleClearResults(st))
		}

		statistics := v1.Group("/statistics")
		{
			statistics.GET("", handlers.HandleGetStatistics(st))
			statistics.GET("/chart", handlers.HandleGetChartData(st))
			statistics.GET("/chart.png", handlers.HandleGetChartPNG(st))
		}
	}
}
