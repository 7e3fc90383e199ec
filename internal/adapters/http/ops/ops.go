// Package ops exposes the operational endpoints served in daemon mode.
package ops

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"f1calsync/pkg/metrics"
)

// Handler serves /healthz and /metrics.
type Handler struct {
	startedAt   time.Time
	lastRunUnix atomic.Int64
}

// NewHandler creates an ops handler.
func NewHandler() *Handler {
	return &Handler{startedAt: time.Now()}
}

// MarkRun records the completion time of the most recent pass, surfaced in
// the health payload.
func (h *Handler) MarkRun(t time.Time) {
	h.lastRunUnix.Store(t.Unix())
}

// Register attaches the ops routes to the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	body := map[string]any{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
	}
	if last := h.lastRunUnix.Load(); last > 0 {
		body["last_run"] = time.Unix(last, 0).UTC().Format(time.RFC3339)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(body)
}
