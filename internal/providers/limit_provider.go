package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
)

const rateLimitedName = "rate-limited"

// rateLimitedProvider wraps a GameProvider and enforces a minimum interval between calls.
type rateLimitedProvider struct {
	next    GameProvider
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedProvider returns a GameProvider that spaces calls at least interval apart.
// Calls block until a token is available so upstream quotas are respected.
func NewRateLimitedProvider(next GameProvider, interval time.Duration, logger *slog.Logger) GameProvider {
	if interval <= 0 {
		interval = time.Second
	}
	return &rateLimitedProvider{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		logger:  logger,
	}
}

func (p *rateLimitedProvider) FetchSchedule(ctx context.Context, date string, tz string) ([]games.Snapshot, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, rateLimitedName, "rate-limited schedule fetch", slog.String("date", date))
	return p.next.FetchSchedule(ctx, date, tz)
}

func (p *rateLimitedProvider) FetchLiveGame(ctx context.Context, gameID int) (games.Snapshot, error) {
	if err := p.wait(ctx); err != nil {
		return games.Snapshot{}, err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, rateLimitedName, "rate-limited live fetch", slog.Int("game_id", gameID))
	return p.next.FetchLiveGame(ctx, gameID)
}

func (p *rateLimitedProvider) wait(ctx context.Context) error {
	if p == nil || p.next == nil {
		if p != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "provider unavailable")
		}
		return ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "rate-limited fetch canceled", slog.Any("err", err))
		return err
	}
	return nil
}
