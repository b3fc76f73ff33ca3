package forecast

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/scorigami-service/internal/domain/franchises"
	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
	"github.com/preston-bernstein/scorigami-service/internal/logging"
)

// Side names which team an outcome is scored for.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Checker answers whether a franchise has never finished a game with the oriented score.
type Checker interface {
	IsFranchiseUnique(ctx context.Context, f franchises.Franchise, key games.OrientedKey) (bool, error)
}

// Outcome is a reachable final score that would be new for one franchise.
type Outcome struct {
	Side        Side                 `json:"side"`
	Team        franchises.Franchise `json:"team"`
	Score       games.OrientedKey    `json:"score"`
	Probability float64              `json:"probability"`
}

// Result is the forecast for one in-progress game.
type Result struct {
	TotalChance      float64  `json:"totalChance"`
	Lambda           float64  `json:"lambda"`
	InningsRemaining int      `json:"inningsRemaining"`
	MostLikely       *Outcome `json:"mostLikely,omitempty"`
}

// Forecaster estimates the chance a game ends in a franchise scorigami.
type Forecaster struct {
	params  Params
	checker Checker
	logger  *slog.Logger
}

// New builds a Forecaster.
func New(params Params, checker Checker, logger *slog.Logger) *Forecaster {
	return &Forecaster{params: params, checker: checker, logger: logger}
}

// Params returns the model parameters in use.
func (f *Forecaster) Params() Params {
	return f.params
}

// Forecast walks every reachable final score and sums the probability of those new to either franchise.
// It returns nil when no regulation innings remain or no unique outcome is reachable.
// A nil cache gets a fresh one; a failed uniqueness check counts as not unique.
func (f *Forecaster) Forecast(ctx context.Context, snap games.Snapshot, home, away franchises.Franchise, cache *Cache) (*Result, error) {
	remaining := f.params.InningsRemaining(snap.Inning)
	if remaining <= 0 {
		return nil, nil
	}
	if cache == nil {
		cache = NewCache()
	}
	lambda := f.params.Lambda(remaining)
	logger := logging.FromContext(ctx, f.logger)

	var total float64
	var best *Outcome
	for _, split := range Distribution(lambda, f.params.MaxAdditionalRuns, f.params.Epsilon) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		finalHome := snap.HomeRuns + split.HomeRuns
		finalAway := snap.AwayRuns + split.AwayRuns

		candidates := []struct {
			side Side
			team franchises.Franchise
			key  games.OrientedKey
		}{
			{SideHome, home, games.OrientedKey{For: finalHome, Against: finalAway}},
			{SideAway, away, games.OrientedKey{For: finalAway, Against: finalHome}},
		}
		newForEither := false
		for _, c := range candidates {
			if !f.unique(ctx, logger, cache, c.side, c.team, c.key) {
				continue
			}
			newForEither = true
			if best == nil || split.Probability > best.Probability {
				best = &Outcome{Side: c.side, Team: c.team, Score: c.key, Probability: split.Probability}
			}
		}
		// A final score counts once even when it is new for both clubs.
		if newForEither {
			total += split.Probability
		}
	}

	if total == 0 {
		return nil, nil
	}
	return &Result{
		TotalChance:      total,
		Lambda:           lambda,
		InningsRemaining: remaining,
		MostLikely:       best,
	}, nil
}

func (f *Forecaster) unique(ctx context.Context, logger *slog.Logger, cache *Cache, side Side, team franchises.Franchise, key games.OrientedKey) bool {
	if v, ok := cache.get(side, key); ok {
		return v
	}
	v, err := f.checker.IsFranchiseUnique(ctx, team, key)
	if err != nil {
		logging.Warn(logger, "franchise uniqueness check failed",
			slog.String(logging.FieldTeam, team.Code),
			slog.String(logging.FieldScore, key.String()),
			"error", err,
		)
		v = false
	}
	cache.put(side, key, v)
	return v
}
