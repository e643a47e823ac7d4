// Package retry provides bounded retry with exponential backoff. It is used
// for idempotent read operations only — transaction submission is never
// routed through it, since a blind resubmit could land twice.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Config bounds a retry loop.
type Config struct {
	MaxAttempts  int           // total attempts, including the first
	InitialDelay time.Duration // delay after the first failure
	MaxDelay     time.Duration // backoff ceiling
	Multiplier   float64       // backoff growth factor
}

// DefaultConfig suits short read queries against a healthy node.
var DefaultConfig = Config{
	MaxAttempts:  3,
	InitialDelay: 100 * time.Millisecond,
	MaxDelay:     5 * time.Second,
	Multiplier:   2.0,
}

// IsRetryable decides whether a failure is worth another attempt.
type IsRetryable func(error) bool

// Do runs fn until it succeeds, the error is not retryable, the attempt
// budget is spent, or the context ends. The last error is wrapped so callers
// can still match it with errors.Is.
func Do[T any](ctx context.Context, cfg Config, retryable IsRetryable, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, fmt.Errorf("retry: %w", err)
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		if !retryable(err) {
			return zero, err
		}
		lastErr = err

		if attempt == cfg.MaxAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
			delay = time.Duration(float64(delay) * cfg.Multiplier)
			if delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}
		case <-ctx.Done():
			return zero, fmt.Errorf("retry: %w", ctx.Err())
		}
	}

	return zero, fmt.Errorf("retry: attempts exhausted: %w", lastErr)
}
