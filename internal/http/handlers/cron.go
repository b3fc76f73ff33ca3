package handlers

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/scorigami-service/internal/http/requestutil"
	"github.com/preston-bernstein/scorigami-service/internal/logging"
	"github.com/preston-bernstein/scorigami-service/internal/poller"
	"github.com/preston-bernstein/scorigami-service/internal/queue"
)

const (
	CheckGamesPath   = "/api/cron/check-games"
	ProcessQueuePath = "/api/cron/process-queue"
)

type checkGamesResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	poller.Summary
}

type processQueueResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Drain   queue.DrainResult `json:"drain"`
}

// CheckGames runs one poll pass over today's games.
func (h *Handler) CheckGames(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.checker == nil {
		writeError(w, r, http.StatusServiceUnavailable, "game checker not configured", logger)
		return
	}

	summary, err := h.checker.RunOnce(r.Context())
	if err != nil {
		logging.Warn(logger, "game check failed", slog.Any("err", err))
		writeError(w, r, http.StatusBadGateway, "game check failed", logger)
		return
	}
	writeJSON(w, http.StatusOK, checkGamesResponse{
		Success: true,
		Message: fmt.Sprintf("Game check complete. Processed %d games.", summary.GamesSeen),
		Summary: summary,
	}, logger)
}

// ProcessQueue drains at most one queued post.
func (h *Handler) ProcessQueue(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.drainer == nil {
		writeError(w, r, http.StatusServiceUnavailable, "queue not configured", logger)
		return
	}

	res, err := h.drainer.DrainOne(r.Context())
	if err != nil {
		logging.Warn(logger, "queue drain failed", slog.Any("err", err))
		writeError(w, r, http.StatusInternalServerError, "queue drain failed", logger)
		return
	}
	writeJSON(w, http.StatusOK, processQueueResponse{
		Success: true,
		Message: res.Message,
		Drain:   res,
	}, logger)
}

// guard accepts GET or POST carrying the cron bearer token.
func (h *Handler) guard(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return false
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "cron unauthorized",
			slog.String("path", r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeUnauthorized(w, h.logger)
		return false
	}
	return true
}

func (h *Handler) authorize(r *http.Request) bool {
	if h.secret == "" {
		return false
	}
	token, ok := requestutil.BearerToken(r)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.secret)) == 1
}
