package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/scorigami-service/internal/domain/franchises"
	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
	"github.com/preston-bernstein/scorigami-service/internal/forecast"
	"github.com/preston-bernstein/scorigami-service/internal/logging"
	"github.com/preston-bernstein/scorigami-service/internal/metrics"
	"github.com/preston-bernstein/scorigami-service/internal/notify"
	"github.com/preston-bernstein/scorigami-service/internal/providers"
	"github.com/preston-bernstein/scorigami-service/internal/scorigami"
	"github.com/preston-bernstein/scorigami-service/internal/social"
	"github.com/preston-bernstein/scorigami-service/internal/timeutil"
)

// Resolver maps provider teams to franchises.
type Resolver interface {
	Resolve(ctx context.Context, providerTeamID int, displayName string) franchises.Franchise
}

// Classifier decides what a final score is.
type Classifier interface {
	Classify(ctx context.Context, snap games.Snapshot) (scorigami.Classification, error)
}

// Forecaster estimates franchise scorigami odds for a live game.
type Forecaster interface {
	Params() forecast.Params
	Forecast(ctx context.Context, snap games.Snapshot, home, away franchises.Franchise, cache *forecast.Cache) (*forecast.Result, error)
}

// Enqueuer holds rate-limited posts for a later drain.
type Enqueuer interface {
	Enqueue(ctx context.Context, gameID int, detail, text string) (bool, error)
}

// Deliverer publishes text through the delivery pipeline.
type Deliverer interface {
	Deliver(ctx context.Context, text string) social.Outcome
}

// Deps wires the poller to the rest of the engine.
type Deps struct {
	Provider   providers.GameProvider
	Resolver   Resolver
	Classifier Classifier
	Forecaster Forecaster
	Composer   *notify.Composer
	Ledger     Ledger
	Queue      Enqueuer
	Deliverer  Deliverer
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
	// Timezone picks the schedule day; empty uses the provider default.
	Timezone string
}

// Poller runs one pass over the day's games per trigger. It has no scheduler of its own.
type Poller struct {
	deps Deps
	now  func() time.Time

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of poll passes.
type Status struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
}

// IsReady reports whether a pass has succeeded recently and passes are not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller.
func New(deps Deps) *Poller {
	return &Poller{deps: deps, now: time.Now}
}

// RunOnce fetches the schedule and processes each game in order.
// A schedule failure fails the pass; per-game failures are logged and counted.
func (p *Poller) RunOnce(ctx context.Context) (Summary, error) {
	start := p.now()
	p.recordAttempt(start)

	summary := Summary{RunID: uuid.NewString(), Date: p.scheduleDate(start)}
	logger := logging.With(logging.FromContext(ctx, p.deps.Logger), slog.String(logging.FieldRunID, summary.RunID))
	ctx = logging.WithLogger(ctx, logger)

	slate, err := p.deps.Provider.FetchSchedule(ctx, summary.Date, p.deps.Timezone)
	p.deps.Metrics.RecordPollerCycle(time.Since(start), len(slate), err)
	if err != nil {
		logging.Error(logger, "schedule fetch failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, start)
		return summary, err
	}
	summary.GamesSeen = len(slate)

	for _, snap := range slate {
		if err := ctx.Err(); err != nil {
			p.recordFailure(err, start)
			return summary, err
		}
		switch {
		case snap.IsFinal():
			summary.add(p.processFinal(ctx, snap))
		case p.deps.Forecaster != nil && p.deps.Forecaster.Params().Eligible(snap):
			summary.add(p.processLive(ctx, snap))
		}
	}

	p.recordSuccess(start)
	logging.Info(logger, "game check complete",
		slog.String(logging.FieldDate, summary.Date),
		slog.Int(logging.FieldCount, summary.GamesSeen),
		slog.Int("delivered", summary.Delivered),
		slog.Int("queued", summary.Queued),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
	return summary, nil
}

func (p *Poller) scheduleDate(at time.Time) string {
	return timeutil.DayIn(at, providers.ResolveTimezone(p.deps.Timezone))
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// Provider exposes the underlying provider (primarily for cleanup in callers).
func (p *Poller) Provider() providers.GameProvider {
	return p.deps.Provider
}
