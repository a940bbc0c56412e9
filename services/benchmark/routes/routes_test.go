// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/AleutianAI/CryptoBench/services/benchmark/bench"
	"github.com/AleutianAI/CryptoBench/services/benchmark/observability"
	"github.com/AleutianAI/CryptoBench/services/benchmark/store"
)

func init() {
	// Set Gin to test mode to reduce noise in test output
	gin.SetMode(gin.TestMode)
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	st := store.NewMemoryStore()
	t.Cleanup(func() { st.Close() })

	runner := bench.NewRunner(bench.NewAdapter(), st, nil)

	router := gin.New()
	SetupRoutes(router, runner, st, observability.InitMetrics())
	return router
}

func TestSetupRoutes_RegistersEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/metrics"},
		{"POST", "/v1/benchmark/run"},
		{"GET", "/v1/algorithms"},
		{"GET", "/v1/results"},
		{"GET", "/v1/results/table"},
		{"GET", "/v1/results/export"},
		{"DELETE", "/v1/results"},
		{"GET", "/v1/statistics"},
		{"GET", "/v1/statistics/chart"},
		{"GET", "/v1/statistics/chart.png"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(tt.method, tt.path, nil)
			router.ServeHTTP(w, req)

			assert.NotEqual(t, http.StatusNotFound, w.Code,
				"route %s %s must be registered", tt.method, tt.path)
		})
	}
}

func TestSetupRoutes_UnknownRoute(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/nope", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
