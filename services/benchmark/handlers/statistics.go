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
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
	"github.com/AleutianAI/CryptoBench/services/benchmark/export"
	"github.com/AleutianAI/CryptoBench/services/benchmark/stats"
	"github.com/AleutianAI/CryptoBench/services/benchmark/store"
)

// HandleGetStatistics returns aggregate statistics keyed by algorithm and
// operation. Pairs with no successful trials are absent from the response.
//
// GET /v1/statistics
func HandleGetStatistics(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		flat, err := stats.Averages(st)
		if err != nil {
			slog.Error("failed to aggregate statistics", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate statistics"})
			return
		}
		c.JSON(http.StatusOK, datatypes.StatisticsResponse{
			Statistics: stats.ByAlgorithm(flat),
		})
	}
}

// HandleGetChartData returns the grouped bar chart dataset. Unlike the
// statistics endpoint, missing cells appear here as 0.
//
// GET /v1/statistics/chart
func HandleGetChartData(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		flat, err := stats.Averages(st)
		if err != nil {
			slog.Error("failed to aggregate statistics", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate statistics"})
			return
		}
		c.JSON(http.StatusOK, export.ChartDataset(flat))
	}
}

// HandleGetChartPNG renders the comparison chart server-side.
//
// GET /v1/statistics/chart.png
func HandleGetChartPNG(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		flat, err := stats.Averages(st)
		if err != nil {
			slog.Error("failed to aggregate statistics", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate statistics"})
			return
		}
		png, err := export.RenderPNG(export.ChartDataset(flat))
		if err != nil {
			slog.Error("failed to render the comparison chart", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render chart"})
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}
