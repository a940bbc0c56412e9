package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/AleutianAI/CryptoBench/services/benchmark/bench"
	"github.com/AleutianAI/CryptoBench/services/benchmark/datatypes"
	"github.com/AleutianAI/CryptoBench/services/benchmark/observability"
)

// WSRunEvent is one websocket frame during a live run.
//
// Type is "result" for per-iteration frames, "done" when the run finishes,
// "error" when it stops early.
type WSRunEvent struct {
	Type      string                 `json:"type"`
	Iteration int                    `json:"iteration,omitempty"`
	Result    *datatypes.TrialResult `json:"result,omitempty"`
	Completed int                    `json:"completed,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func sendJSON(ws *websocket.Conn, v interface{}) error {
	err := ws.WriteJSON(v)
	if err != nil {
		slog.Warn("Failed to write WebSocket JSON", "error", err)
	}
	return err
}

// HandleRunWebSocket executes a benchmark run, streaming one frame per
// iteration so the dashboard can redraw its table and chart live instead of
// waiting for the whole run.
//
// GET /v1/benchmark/run/ws
//
// The client sends a single RunBenchmarkRequest JSON message; the server
// answers with N "result" frames followed by a "done" frame. A dropped
// connection cancels the run between iterations.
func HandleRunWebSocket(runner *bench.Runner, metrics *observability.TrialMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.Error("failed to upgrade the websocket", "error", err)
			return
		}
		defer ws.Close()

		var req datatypes.RunBenchmarkRequest
		if err := ws.ReadJSON(&req); err != nil {
			_ = sendJSON(ws, WSRunEvent{Type: "error", Error: "invalid request message"})
			return
		}
		if err := req.Validate(); err != nil {
			_ = sendJSON(ws, WSRunEvent{Type: "error", Error: err.Error()})
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

		iteration := 0
		results, err := runner.Run(c.Request.Context(), spec, func(r datatypes.TrialResult) error {
			iteration++
			metrics.RecordTrial(r)
			// A failed write means the client is gone; returning the error
			// stops the run before the next iteration.
			return sendJSON(ws, WSRunEvent{Type: "result", Iteration: iteration, Result: &r})
		})
		if n, lenErr := runner.Store().Len(); lenErr == nil {
			metrics.SetLogSize(n)
		}
		if err != nil {
			switch {
			case errors.Is(err, datatypes.ErrInvalidRequest):
				metrics.RecordRun(observability.OutcomeInvalid)
			default:
				metrics.RecordRun(observability.OutcomeAborted)
			}
			_ = sendJSON(ws, WSRunEvent{Type: "error", Completed: len(results), Error: err.Error()})
			return
		}
		metrics.RecordRun(observability.OutcomeCompleted)
		_ = sendJSON(ws, WSRunEvent{Type: "done", Completed: len(results)})
	}
}
