package providers

import (
	"context"

	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
)

// GameProvider defines how upstream game data is fetched and normalized.
// The date parameter, when provided, should be a YYYY-MM-DD string indicating which day's schedule to fetch.
// Providers should interpret an empty date as "today" in their configured timezone (tz overrides it).
type GameProvider interface {
	FetchSchedule(ctx context.Context, date string, tz string) ([]games.Snapshot, error)
	// FetchLiveGame returns the detailed live view of one game (inning, runs, inning state).
	FetchLiveGame(ctx context.Context, gameID int) (games.Snapshot, error)
}
