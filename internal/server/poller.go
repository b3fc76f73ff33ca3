package server

import (
	"context"

	"github.com/preston-bernstein/scorigami-service/internal/poller"
)

// Poller is the part of the game poller the server exposes over HTTP.
type Poller interface {
	RunOnce(ctx context.Context) (poller.Summary, error)
	Status() poller.Status
}
