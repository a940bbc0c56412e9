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
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
	"github.com/AleutianAI/CryptoBench/services/benchmark/store"
)

// HandleGetResults returns the full result log, newest first.
//
// GET /v1/results
func HandleGetResults(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := st.All()
		if err != nil {
			slog.Error("failed to read the result log", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read results"})
			return
		}
		c.JSON(http.StatusOK, datatypes.ResultsResponse{
			Count:   len(results),
			Results: results,
		})
	}
}

// HandleGetResultsTable returns the capped display window for the dashboard
// table. Defaults to the 20 most recent rows; ?limit= overrides within
// 1..100.
//
// GET /v1/results/table
func HandleGetResultsTable(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := store.DisplayWindow
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > 100 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer in 1..100"})
				return
			}
			limit = n
		}
		results, err := st.Recent(limit)
		if err != nil {
			slog.Error("failed to read the result log", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read results"})
			return
		}
		c.JSON(http.StatusOK, datatypes.ResultsResponse{
			Count:   len(results),
			Results: results,
		})
	}
}

// HandleClearResults empties the result log.
//
// DELETE /v1/results?confirm=true
//
// Clearing is destructive and unrecoverable, so the boundary requires an
// explicit confirm flag; the core store contract itself has no such notion.
func HandleClearResults(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("confirm") != "true" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "clearing the result log requires ?confirm=true",
			})
			return
		}
		if err := st.Clear(); err != nil {
			slog.Error("failed to clear the result log", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear results"})
			return
		}
		slog.Info("result log cleared")
		c.JSON(http.StatusOK, gin.H{"status": "success", "cleared": true})
	}
}
