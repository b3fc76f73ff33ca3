package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/preston-bernstein/scorigami-service/internal/poller"
	"github.com/preston-bernstein/scorigami-service/internal/queue"
)

// GameChecker runs one pass over the day's games.
type GameChecker interface {
	RunOnce(ctx context.Context) (poller.Summary, error)
}

// QueueDrainer handles the oldest queued post.
type QueueDrainer interface {
	DrainOne(ctx context.Context) (queue.DrainResult, error)
}

// Handler wires HTTP routes to the engine.
type Handler struct {
	checker  GameChecker
	drainer  QueueDrainer
	secret   string
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. An empty secret rejects every trigger request.
func NewHandler(checker GameChecker, drainer QueueDrainer, secret string, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		checker:  checker,
		drainer:  drainer,
		secret:   secret,
		logger:   logger,
		statusFn: statusFn,
	}
}

// ServeHTTP dispatches by path, for callers that mount the handler directly.
func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.URL.Path {
	case "/health":
		h.Health(w, r)
	case "/ready":
		h.Ready(w, r)
	case CheckGamesPath:
		h.CheckGames(w, r)
	case ProcessQueuePath:
		h.ProcessQueue(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether recent game checks are succeeding. Before the first trigger it reports idle.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.LastAttempt.IsZero() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "idle"}, h.logger)
		return
	}
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"status":      "ready",
			"lastSuccess": status.LastSuccess.Format(time.RFC3339),
		}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}
