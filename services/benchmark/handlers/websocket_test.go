// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the live benchmark websocket

package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/CryptoBench/services/benchmark/bench"
	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
	"github.com/AleutianAI/CryptoBench/services/benchmark/observability"
	"github.com/AleutianAI/CryptoBench/services/benchmark/store"
)

func wsDial(t *testing.T, st store.Store) *websocket.Conn {
	t.Helper()

	runner := bench.NewRunner(bench.NewAdapter(), st, nil)
	metrics := observability.InitMetrics()

	router := gin.New()
	router.GET("/v1/benchmark/run/ws", HandleRunWebSocket(runner, metrics))

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/benchmark/run/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func TestHandleRunWebSocket_StreamsPerIteration(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()

	ws := wsDial(t, st)
	require.NoError(t, ws.WriteJSON(datatypes.RunBenchmarkRequest{
		Algorithm:   "ecc",
		Operation:   "keygen",
		MessageSize: 64,
		Iterations:  3,
	}))

	for i := 1; i <= 3; i++ {
		var event WSRunEvent
		require.NoError(t, ws.ReadJSON(&event))
		assert.Equal(t, "result", event.Type)
		assert.Equal(t, i, event.Iteration)
		require.NotNil(t, event.Result)
		assert.Equal(t, datatypes.StatusSuccess, event.Result.Status)
	}

	var done WSRunEvent
	require.NoError(t, ws.ReadJSON(&done))
	assert.Equal(t, "done", done.Type)
	assert.Equal(t, 3, done.Completed)

	n, err := st.Len()
	require.NoError(t, err)
	assert.Equal(t, 3, n, "streamed results still land in the log")
}

func TestHandleRunWebSocket_InvalidRequest(t *testing.T) {
	st := store.NewMemoryStore()
	defer st.Close()

	ws := wsDial(t, st)
	require.NoError(t, ws.WriteJSON(datatypes.RunBenchmarkRequest{
		Algorithm: "rsa",
		Operation: "sign",
	}))

	var event WSRunEvent
	require.NoError(t, ws.ReadJSON(&event))
	assert.Equal(t, "error", event.Type)
	assert.NotEmpty(t, event.Error)

	n, err := st.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
