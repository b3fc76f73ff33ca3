package queue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/scorigami-service/internal/logging"
	"github.com/preston-bernstein/scorigami-service/internal/metrics"
	"github.com/preston-bernstein/scorigami-service/internal/social"
	"github.com/preston-bernstein/scorigami-service/internal/store"
)

const defaultExpiry = 2 * time.Hour

// Store persists queued messages.
type Store interface {
	Enqueue(ctx context.Context, gameID int, detail, text string) (bool, error)
	Oldest(ctx context.Context) (store.QueuedMessage, bool, error)
	Delete(ctx context.Context, id uint) error
	TouchAttempt(ctx context.Context, id uint) (time.Time, error)
}

// Ledger records the terminal decision for a drained message.
type Ledger interface {
	Record(ctx context.Context, gameID int, kind store.Kind, detail, score string) error
}

// Deliverer publishes text through the delivery pipeline.
type Deliverer interface {
	Deliver(ctx context.Context, text string) social.Outcome
}

// Result names what one drain did.
type Result string

const (
	DrainEmpty     Result = "empty"
	DrainStale     Result = "stale"
	DrainDelivered Result = "delivered"
	DrainRetained  Result = "retained"
)

// DrainResult describes one drain invocation.
type DrainResult struct {
	Result    Result         `json:"result"`
	Message   string         `json:"message"`
	GameID    int            `json:"gameId,omitempty"`
	MessageID uint           `json:"messageId,omitempty"`
	Outcome   social.Outcome `json:"outcome,omitempty"`
	RunID     string         `json:"runId"`
}

// Queue holds rate-limited posts and retries them one per drain.
type Queue struct {
	store     Store
	ledger    Ledger
	deliverer Deliverer
	expiry    time.Duration
	now       func() time.Time
	logger    *slog.Logger
	metrics   *metrics.Recorder
}

// New builds a Queue. Messages older than expiry are discarded instead of sent.
func New(s Store, ledger Ledger, deliverer Deliverer, expiry time.Duration, logger *slog.Logger, recorder *metrics.Recorder) *Queue {
	if expiry <= 0 {
		expiry = defaultExpiry
	}
	return &Queue{
		store:     s,
		ledger:    ledger,
		deliverer: deliverer,
		expiry:    expiry,
		now:       time.Now,
		logger:    logger,
		metrics:   recorder,
	}
}

// Enqueue holds text for a later drain. It is a logged no-op when the game already has a message waiting.
func (q *Queue) Enqueue(ctx context.Context, gameID int, detail, text string) (bool, error) {
	logger := logging.FromContext(ctx, q.logger)
	added, err := q.store.Enqueue(ctx, gameID, detail, text)
	if err != nil {
		return false, err
	}
	if !added {
		logging.Info(logger, "message already queued for game",
			slog.Int(logging.FieldGameID, gameID),
			slog.String(logging.FieldDetail, detail),
		)
		return false, nil
	}
	logging.Info(logger, "message queued",
		slog.Int(logging.FieldGameID, gameID),
		slog.String(logging.FieldDetail, detail),
	)
	return true, nil
}

// DrainOne handles the oldest queued message: expire it, deliver it, or leave it for the next drain.
func (q *Queue) DrainOne(ctx context.Context) (DrainResult, error) {
	runID := uuid.NewString()
	logger := logging.With(logging.FromContext(ctx, q.logger), slog.String(logging.FieldRunID, runID))
	ctx = logging.WithLogger(ctx, logger)

	msg, found, err := q.store.Oldest(ctx)
	if err != nil {
		logging.Error(logger, "queue fetch failed", err)
		return DrainResult{RunID: runID}, err
	}
	if !found {
		return q.finish(DrainResult{Result: DrainEmpty, Message: "Queue is empty.", RunID: runID}), nil
	}

	res := DrainResult{GameID: msg.GameID, MessageID: msg.ID, RunID: runID}
	logger = logging.With(logger,
		slog.Int(logging.FieldGameID, msg.GameID),
		slog.String(logging.FieldDetail, msg.Detail),
	)
	ctx = logging.WithLogger(ctx, logger)

	if age := msg.Age(q.now()); age > q.expiry {
		if err := q.store.Delete(ctx, msg.ID); err != nil {
			return res, err
		}
		q.record(ctx, logger, msg, store.KindStale)
		logging.Info(logger, "stale message discarded", slog.Duration("age", age))
		res.Result = DrainStale
		res.Message = fmt.Sprintf("Skipped and deleted stale message %d.", msg.ID)
		return q.finish(res), nil
	}

	res.Outcome = q.deliverer.Deliver(ctx, msg.Text)
	if res.Outcome == social.Delivered {
		if err := q.store.Delete(ctx, msg.ID); err != nil {
			return res, err
		}
		kind := store.KindFinalFromQueue
		if store.IsForecastDetail(msg.Detail) {
			kind = store.KindForecast
		}
		q.record(ctx, logger, msg, kind)
		res.Result = DrainDelivered
		res.Message = fmt.Sprintf("Successfully posted queued message for game %d.", msg.GameID)
		return q.finish(res), nil
	}

	if _, err := q.store.TouchAttempt(ctx, msg.ID); err != nil {
		logging.Error(logger, "queue attempt stamp failed", err)
	}
	logging.Warn(logger, "queued message kept for a later drain", slog.String(logging.FieldOutcome, string(res.Outcome)))
	res.Result = DrainRetained
	res.Message = fmt.Sprintf("Failed to post queued message due to: %s. It remains in the queue.", res.Outcome)
	return q.finish(res), nil
}

func (q *Queue) record(ctx context.Context, logger *slog.Logger, msg store.QueuedMessage, kind store.Kind) {
	if err := q.ledger.Record(ctx, msg.GameID, kind, msg.Detail, ""); err != nil {
		logging.Error(logger, "ledger record failed", err, slog.String(logging.FieldKind, string(kind)))
	}
}

func (q *Queue) finish(res DrainResult) DrainResult {
	q.metrics.RecordQueueDrain(string(res.Result))
	return res
}
