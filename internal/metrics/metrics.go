package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about provider calls and engine decisions.
// When telemetry is enabled the same events are forwarded to OpenTelemetry instruments.
type Recorder struct {
	mu              sync.Mutex
	stats           map[string]*providerStats
	classifications map[string]int
	deliveries      map[string]int
	drains          map[string]int
	otel            *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:           make(map[string]*providerStats),
		classifications: make(map[string]int),
		deliveries:      make(map[string]int),
		drains:          make(map[string]int),
		otel:            otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordClassification counts final-score classifications by kind.
func (r *Recorder) RecordClassification(kind string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.classifications[kind]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordKind(r.otel.classifications, AttrKind, kind)
	}
}

// RecordDelivery counts delivery attempts by outcome (delivered, rate_limited, error).
func (r *Recorder) RecordDelivery(outcome string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.deliveries[outcome]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordKind(r.otel.deliveries, AttrOutcome, outcome)
	}
}

// RecordQueueDrain counts drain invocations by result.
func (r *Recorder) RecordQueueDrain(outcome string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.drains[outcome]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordKind(r.otel.queueDrains, AttrOutcome, outcome)
	}
}

// Classifications returns how many classifications of kind were recorded.
func (r *Recorder) Classifications(kind string) int {
	return r.count(func() map[string]int { return r.classifications }, kind)
}

// Deliveries returns how many deliveries ended with outcome.
func (r *Recorder) Deliveries(outcome string) int {
	return r.count(func() map[string]int { return r.deliveries }, outcome)
}

// QueueDrains returns how many drains ended with outcome.
func (r *Recorder) QueueDrains(outcome string) int {
	return r.count(func() map[string]int { return r.drains }, outcome)
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(provider)
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles, the number of games seen and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, games int, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, games, err)
}

func (r *Recorder) ensureStatsLocked(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}

func (r *Recorder) snapshot(provider string) providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[provider]; ok && stats != nil {
		return *stats
	}
	return providerStats{}
}

func (r *Recorder) count(m func() map[string]int, key string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return m()[key]
}
