package poller

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
	"github.com/preston-bernstein/scorigami-service/internal/forecast"
	"github.com/preston-bernstein/scorigami-service/internal/logging"
	"github.com/preston-bernstein/scorigami-service/internal/social"
	"github.com/preston-bernstein/scorigami-service/internal/store"
)

// Ledger is the idempotency ledger consulted before any side effect.
type Ledger interface {
	HasRecorded(ctx context.Context, gameID int, detail string) (bool, error)
	Reserve(ctx context.Context, gameID int, detail, score string) (bool, error)
	Record(ctx context.Context, gameID int, kind store.Kind, detail, score string) error
	Release(ctx context.Context, gameID int, detail string) error
	LastScore(ctx context.Context, gameID int) (string, bool, error)
}

func (p *Poller) processFinal(ctx context.Context, snap games.Snapshot) Outcome {
	detail := store.DetailFinal
	score := snap.Score()
	logger := logging.With(logging.FromContext(ctx, p.deps.Logger),
		slog.Int(logging.FieldGameID, snap.GameID),
		slog.String(logging.FieldDetail, detail),
	)
	ctx = logging.WithLogger(ctx, logger)

	if !p.claim(ctx, logger, snap.GameID, detail, score) {
		return OutcomeSkipped
	}

	cl, err := p.deps.Classifier.Classify(ctx, snap)
	if err != nil {
		logging.Error(logger, "classification failed", err)
		p.release(ctx, logger, snap.GameID, detail)
		return OutcomeFailed
	}

	if cl.LowValue {
		p.record(ctx, logger, snap.GameID, store.KindLowValue, detail, score)
		return OutcomeLowValue
	}

	text, ok := p.deps.Composer.Final(snap, cl)
	if !ok {
		p.record(ctx, logger, snap.GameID, store.KindNoPost, detail, score)
		return OutcomeNoPost
	}
	return p.deliver(ctx, logger, snap.GameID, store.KindFinal, detail, score, text)
}

func (p *Poller) processLive(ctx context.Context, scheduled games.Snapshot) Outcome {
	logger := logging.With(logging.FromContext(ctx, p.deps.Logger), slog.Int(logging.FieldGameID, scheduled.GameID))

	snap, err := p.deps.Provider.FetchLiveGame(ctx, scheduled.GameID)
	if err != nil {
		logging.Warn(logger, "live feed fetch failed, skipping game", "error", err)
		return OutcomeSkipped
	}
	if !p.deps.Forecaster.Params().Eligible(snap) {
		return OutcomeSkipped
	}

	detail := store.ForecastDetail(snap.Inning)
	score := snap.Score()
	logger = logging.With(logger, slog.String(logging.FieldDetail, detail), slog.String(logging.FieldScore, score))
	ctx = logging.WithLogger(ctx, logger)

	last, found, err := p.deps.Ledger.LastScore(ctx, snap.GameID)
	if err != nil {
		logging.Error(logger, "last forecast lookup failed, treating as posted", err)
		return OutcomeSkipped
	}
	if found && last == score {
		return OutcomeSkipped
	}
	if !p.claim(ctx, logger, snap.GameID, detail, score) {
		return OutcomeSkipped
	}

	home := p.deps.Resolver.Resolve(ctx, snap.Home.ID, snap.Home.Name)
	away := p.deps.Resolver.Resolve(ctx, snap.Away.ID, snap.Away.Name)
	result, err := p.deps.Forecaster.Forecast(ctx, snap, home, away, forecast.NewCache())
	if err != nil {
		logging.Error(logger, "forecast failed", err)
		p.release(ctx, logger, snap.GameID, detail)
		return OutcomeFailed
	}

	text, ok := p.deps.Composer.Forecast(snap, home, away, result)
	if !ok {
		// Nothing reachable this inning; a later poll may find a different score.
		p.release(ctx, logger, snap.GameID, detail)
		return OutcomeSkipped
	}
	return p.deliver(ctx, logger, snap.GameID, store.KindForecast, detail, score, text)
}

// claim checks the ledger and reserves the event. Any ledger error counts as already handled.
func (p *Poller) claim(ctx context.Context, logger *slog.Logger, gameID int, detail, score string) bool {
	recorded, err := p.deps.Ledger.HasRecorded(ctx, gameID, detail)
	if err != nil {
		logging.Error(logger, "ledger check failed, treating as posted", err)
		return false
	}
	if recorded {
		return false
	}
	reserved, err := p.deps.Ledger.Reserve(ctx, gameID, detail, score)
	if err != nil {
		logging.Error(logger, "ledger reserve failed, treating as posted", err)
		return false
	}
	if !reserved {
		logging.Info(logger, "event claimed by another run")
	}
	return reserved
}

func (p *Poller) deliver(ctx context.Context, logger *slog.Logger, gameID int, kind store.Kind, detail, score, text string) Outcome {
	switch p.deps.Deliverer.Deliver(ctx, text) {
	case social.Delivered:
		p.record(ctx, logger, gameID, kind, detail, score)
		return OutcomeDelivered
	case social.RateLimited:
		if p.deps.Queue == nil {
			p.release(ctx, logger, gameID, detail)
			return OutcomeRetry
		}
		added, err := p.deps.Queue.Enqueue(ctx, gameID, detail, text)
		if err != nil || !added {
			if err != nil {
				logging.Error(logger, "enqueue failed", err)
			}
			p.release(ctx, logger, gameID, detail)
			return OutcomeRetry
		}
		p.record(ctx, logger, gameID, store.KindQueued, detail, score)
		return OutcomeQueued
	default:
		p.release(ctx, logger, gameID, detail)
		return OutcomeRetry
	}
}

func (p *Poller) record(ctx context.Context, logger *slog.Logger, gameID int, kind store.Kind, detail, score string) {
	if err := p.deps.Ledger.Record(ctx, gameID, kind, detail, score); err != nil {
		logging.Error(logger, "ledger record failed", err, slog.String(logging.FieldKind, string(kind)))
		return
	}
	logging.Info(logger, "decision recorded", slog.String(logging.FieldKind, string(kind)))
}

func (p *Poller) release(ctx context.Context, logger *slog.Logger, gameID int, detail string) {
	if err := p.deps.Ledger.Release(ctx, gameID, detail); err != nil {
		logging.Error(logger, "ledger release failed", err)
	}
}
