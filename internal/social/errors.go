package social

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrRateLimited matches any rate-limit rejection from the social channel.
var ErrRateLimited = errors.New("social channel rate limited")

// RateLimitError is returned when the channel answers 429 Too Many Requests.
type RateLimitError struct {
	StatusCode int
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s (status=%d, retry_after=%s)", ErrRateLimited, e.StatusCode, e.RetryAfter)
	}
	return fmt.Sprintf("%s (status=%d)", ErrRateLimited, e.StatusCode)
}

// Is lets errors.Is(err, ErrRateLimited) match.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// retryAfter reads the wait from Retry-After seconds, falling back to the x-rate-limit-reset epoch.
func retryAfter(retryHeader, resetHeader string, now time.Time) time.Duration {
	if secs, err := strconv.Atoi(retryHeader); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if epoch, err := strconv.ParseInt(resetHeader, 10, 64); err == nil {
		if wait := time.Unix(epoch, 0).Sub(now); wait > 0 {
			return wait
		}
	}
	return 0
}
