package pipeline

import (
	"context"
	"math/rand/v2"
	"time"
)

const MaxRetries = 3

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * 50 * time.Millisecond
	if base > 2*time.Second {
		base = 2 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

// withRetry runs fn until it succeeds, returns a non-retryable error, or
// MaxRetries attempts are used.
func withRetry(ctx context.Context, retryable func(error) bool, fn func() error) error {
	var err error
	for attempt := range MaxRetries {
		if err = fn(); err == nil || !retryable(err) {
			return err
		}
		if attempt == MaxRetries-1 {
			break
		}
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
