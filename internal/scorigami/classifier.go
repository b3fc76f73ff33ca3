package scorigami

import (
	"context"
	"errors"
	"log/slog"

	"github.com/preston-bernstein/scorigami-service/internal/domain/franchises"
	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
	"github.com/preston-bernstein/scorigami-service/internal/logging"
	"github.com/preston-bernstein/scorigami-service/internal/metrics"
	"github.com/preston-bernstein/scorigami-service/internal/store"
)

// History is the read side of the historical game log.
type History interface {
	HasOccurredLeagueWide(ctx context.Context, key games.ScoreKey) (bool, int, error)
	HasOccurredForFranchise(ctx context.Context, lineage []string, key games.OrientedKey) (bool, error)
	FranchiseDistinctCount(ctx context.Context, lineage []string) (int, error)
	GetFrequency(ctx context.Context, key games.ScoreKey) (games.HistoricalRecord, error)
}

// Resolver maps provider teams to franchises.
type Resolver interface {
	Resolve(ctx context.Context, providerTeamID int, displayName string) franchises.Franchise
}

// Classifier decides which kind of announcement a final score earns.
// Store failures never surface as errors: each lookup degrades to the answer that cannot over-announce.
type Classifier struct {
	history         History
	resolver        Resolver
	minCombinedRuns int
	logger          *slog.Logger
	metrics         *metrics.Recorder
}

// NewClassifier builds a Classifier. Finals with fewer than minCombinedRuns are flagged low value.
func NewClassifier(history History, resolver Resolver, minCombinedRuns int, logger *slog.Logger, recorder *metrics.Recorder) *Classifier {
	return &Classifier{
		history:         history,
		resolver:        resolver,
		minCombinedRuns: minCombinedRuns,
		logger:          logger,
		metrics:         recorder,
	}
}

// Classify runs the tie, league-wide and franchise checks in that order.
func (c *Classifier) Classify(ctx context.Context, snap games.Snapshot) (Classification, error) {
	if err := ctx.Err(); err != nil {
		return Classification{}, err
	}
	logger := logging.With(logging.FromContext(ctx, c.logger), slog.Int(logging.FieldGameID, snap.GameID))

	out := Classification{
		Key:      snap.Key(),
		Home:     c.resolver.Resolve(ctx, snap.Home.ID, snap.Home.Name),
		Away:     c.resolver.Resolve(ctx, snap.Away.ID, snap.Away.Name),
		LowValue: snap.CombinedRuns() < c.minCombinedRuns,
	}

	switch {
	case snap.IsTie():
		out.Kind = KindTie
		c.attachHistory(ctx, logger, &out)
	case c.leagueWide(ctx, logger, &out):
		out.Kind = KindTrueUnique
	default:
		for _, side := range []struct {
			team franchises.Franchise
			key  games.OrientedKey
		}{
			{out.Away, snap.AwayKey()},
			{out.Home, snap.HomeKey()},
		} {
			if hit, ok := c.franchiseHit(ctx, logger, side.team, side.key); ok {
				out.Franchises = append(out.Franchises, hit)
			}
		}
		c.attachHistory(ctx, logger, &out)
		switch {
		case len(out.Franchises) > 0:
			out.Kind = KindFranchiseUnique
		case out.HasHistory:
			out.Kind = KindNotUnique
		default:
			out.Kind = KindNoHistory
		}
	}

	c.metrics.RecordClassification(string(out.Kind))
	logging.Info(logger, "final classified",
		slog.String(logging.FieldKind, string(out.Kind)),
		slog.String(logging.FieldScore, out.Key.String()),
		slog.Bool("low_value", out.LowValue),
	)
	return out, nil
}

// IsFranchiseUnique reports whether the franchise never played a game ending with this pair of scores,
// whichever side it was on.
// Franchises without lineage are never unique.
func (c *Classifier) IsFranchiseUnique(ctx context.Context, f franchises.Franchise, key games.OrientedKey) (bool, error) {
	if len(f.Lineage) == 0 {
		return false, nil
	}
	seen, err := c.history.HasOccurredForFranchise(ctx, f.Lineage, key)
	if err != nil {
		return false, err
	}
	return !seen, nil
}

func (c *Classifier) leagueWide(ctx context.Context, logger *slog.Logger, out *Classification) bool {
	seen, count, err := c.history.HasOccurredLeagueWide(ctx, out.Key)
	if err != nil {
		logging.Error(logger, "league-wide lookup failed", err, slog.String(logging.FieldScore, out.Key.String()))
		return false
	}
	if seen {
		return false
	}
	out.Ordinal = count
	return true
}

func (c *Classifier) franchiseHit(ctx context.Context, logger *slog.Logger, f franchises.Franchise, key games.OrientedKey) (FranchiseHit, bool) {
	unique, err := c.IsFranchiseUnique(ctx, f, key)
	if err != nil {
		logging.Error(logger, "franchise lookup failed", err,
			slog.String(logging.FieldTeam, f.Code),
			slog.String(logging.FieldScore, key.String()),
		)
		return FranchiseHit{}, false
	}
	if !unique {
		return FranchiseHit{}, false
	}
	hit := FranchiseHit{Franchise: f, Key: key}
	count, err := c.history.FranchiseDistinctCount(ctx, f.Lineage)
	if err != nil {
		logging.Warn(logger, "franchise score count failed", slog.String(logging.FieldTeam, f.Code), "error", err)
		return hit, true
	}
	hit.Ordinal = count + 1
	return hit, true
}

func (c *Classifier) attachHistory(ctx context.Context, logger *slog.Logger, out *Classification) {
	rec, err := c.history.GetFrequency(ctx, out.Key)
	switch {
	case err == nil:
		out.History = rec
		out.HasHistory = true
	case errors.Is(err, store.ErrNotFound):
	default:
		logging.Warn(logger, "frequency lookup failed", slog.String(logging.FieldScore, out.Key.String()), "error", err)
	}
}
