// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for miscellaneous handlers

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
)

func TestHealthCheck_ReturnsOK(t *testing.T) {
	router := gin.New()
	router.GET("/health", HealthCheck)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "ok", response["status"])
}

func TestHandleListAlgorithms(t *testing.T) {
	router := gin.New()
	router.GET("/v1/algorithms", HandleListAlgorithms())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/algorithms", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Algorithms []datatypes.AlgorithmProfile `json:"algorithms"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Algorithms, 2)
	assert.Equal(t, datatypes.AlgorithmECC, response.Algorithms[0].Code)
	assert.Equal(t, datatypes.AlgorithmDilithium, response.Algorithms[1].Code)
}
