package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
	"github.com/preston-bernstein/scorigami-service/internal/logging"
	"github.com/preston-bernstein/scorigami-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 5 * time.Second
)

// retryingProvider wraps a GameProvider with retry/backoff behavior.
// Rate limit responses honor Retry-After when the upstream sends one.
type retryingProvider struct {
	inner        GameProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/base are <= 0, defaults are used.
func NewRetryingProvider(inner GameProvider, logger *slog.Logger, rec *metrics.Recorder, providerName string, maxAttempts int, base time.Duration) GameProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if base <= 0 {
		base = defaultBackoff
	}
	if providerName == "" {
		providerName = "provider"
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      rec,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = base
			b.MaxInterval = maxBackoff
			b.MaxElapsedTime = 0
			return b
		},
	}
}

func (r *retryingProvider) FetchSchedule(ctx context.Context, date string, tz string) ([]games.Snapshot, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}
	var out []games.Snapshot
	err := r.do(ctx, "schedule", func() error {
		res, err := r.inner.FetchSchedule(ctx, date, tz)
		out = res
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *retryingProvider) FetchLiveGame(ctx context.Context, gameID int) (games.Snapshot, error) {
	if r.inner == nil {
		return games.Snapshot{}, ErrProviderUnavailable
	}
	var out games.Snapshot
	err := r.do(ctx, "live_feed", func() error {
		res, err := r.inner.FetchLiveGame(ctx, gameID)
		out = res
		return err
	})
	if err != nil {
		return games.Snapshot{}, err
	}
	return out, nil
}

func (r *retryingProvider) do(ctx context.Context, op string, fn func() error) error {
	policy := &retryAfterBackOff{BackOff: r.newBackOff()}
	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1)), ctx)

	attempt := 0
	operation := func() error {
		attempt++
		start := time.Now()
		err := fn()
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return backoff.Permanent(err)
		}
		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
			policy.override = rlErr.RetryAfter
		}
		return err
	}
	notify := func(err error, delay time.Duration) {
		r.logWarn(ctx, "provider fetch retry",
			"op", op,
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"delay", delay,
			"err", err,
		)
	}

	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		r.logWarn(ctx, "provider fetch failed", "op", op, "attempts", attempt, "err", err)
		return err
	}
	return nil
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logWithProvider(ctx, logging.FromContext(ctx, r.logger), slog.LevelWarn, r.providerName, msg, args...)
}

// retryAfterBackOff lets a single Retry-After hint replace the next computed delay.
type retryAfterBackOff struct {
	backoff.BackOff
	override time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	if b.override > 0 {
		next, b.override = b.override, 0
	}
	return next
}
