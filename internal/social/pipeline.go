package social

import (
	"context"
	"errors"
	"log/slog"

	"github.com/preston-bernstein/scorigami-service/internal/logging"
	"github.com/preston-bernstein/scorigami-service/internal/metrics"
)

// Outcome is the result of one delivery attempt.
type Outcome string

const (
	Delivered   Outcome = "delivered"
	RateLimited Outcome = "rate_limited"
	OtherError  Outcome = "error"

	// simulated is recorded in metrics when the toggle is off; callers still see Delivered.
	simulated = "simulated"
)

// Pipeline is the single path to the social channel, guarded by the global posting toggle.
type Pipeline struct {
	publisher Publisher
	enabled   bool
	logger    *slog.Logger
	metrics   *metrics.Recorder
}

// NewPipeline builds a pipeline. With enabled false nothing is sent; every post is logged and reported delivered.
func NewPipeline(publisher Publisher, enabled bool, logger *slog.Logger, recorder *metrics.Recorder) *Pipeline {
	return &Pipeline{publisher: publisher, enabled: enabled, logger: logger, metrics: recorder}
}

// Enabled reports whether posts reach the channel.
func (p *Pipeline) Enabled() bool {
	return p.enabled
}

// Deliver attempts to publish text and classifies the result.
func (p *Pipeline) Deliver(ctx context.Context, text string) Outcome {
	logger := logging.FromContext(ctx, p.logger)
	if !p.enabled {
		logging.Info(logger, "delivery disabled, would post", slog.String("text", text))
		p.metrics.RecordDelivery(simulated)
		return Delivered
	}
	if p.publisher == nil {
		logging.Error(logger, "delivery failed", errors.New("no publisher configured"))
		p.metrics.RecordDelivery(string(OtherError))
		return OtherError
	}

	err := p.publisher.Post(ctx, text)
	outcome := classify(err)
	switch outcome {
	case Delivered:
		logging.Info(logger, "post delivered")
	case RateLimited:
		logging.Warn(logger, "delivery rate limited", "error", err)
	default:
		logging.Error(logger, "delivery failed", err)
	}
	p.metrics.RecordDelivery(string(outcome))
	return outcome
}

func classify(err error) Outcome {
	switch {
	case err == nil:
		return Delivered
	case errors.Is(err, ErrRateLimited):
		return RateLimited
	default:
		return OtherError
	}
}
