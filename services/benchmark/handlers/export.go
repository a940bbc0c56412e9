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
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/CryptoBench/services/benchmark/export"
	"github.com/AleutianAI/CryptoBench/services/benchmark/store"
)

// HandleExportCSV streams the entire result log as a CSV attachment.
//
// GET /v1/results/export
//
// The export always covers the full log regardless of the table's display
// window. Failed trials are included; they are data.
func HandleExportCSV(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := st.All()
		if err != nil {
			slog.Error("failed to read the result log for export", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read results"})
			return
		}

		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, results); err != nil {
			slog.Error("failed to serialize the result log", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to serialize results"})
			return
		}

		filename := export.CSVFilename(time.Now())
		slog.Info("exporting result log", "rows", len(results), "filename", filename)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
	}
}
