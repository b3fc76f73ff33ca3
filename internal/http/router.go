package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/scorigami-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(h *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/ready", h.Ready)
	mux.HandleFunc(handlers.CheckGamesPath, h.CheckGames)
	mux.HandleFunc(handlers.ProcessQueuePath, h.ProcessQueue)
	return mux
}
