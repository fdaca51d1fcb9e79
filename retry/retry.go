package retry

import (
	"context"
	"errors"
	"time"

	ace "github.com/illyshaieb/ace"
)

// Do executes the given function with retry logic.
// It respects context cancellation during backoff waits.
// Returns the result on success, or the last error if all attempts fail.
func Do[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !IsTransient(err) {
			return zero, err
		}

		// Don't sleep after the last attempt
		if attempt < cfg.MaxAttempts-1 {
			delay := cfg.Delay(attempt)

			// A server-supplied Retry-After wins over computed backoff.
			if serverDelay := retryAfterFromError(err); serverDelay > 0 {
				delay = serverDelay
			}

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
				// Continue to next attempt
			}
		}
	}

	return zero, lastErr
}

// retryAfterFromError extracts the RetryAfter duration from a
// CategorizedError. Returns 0 if the error doesn't carry one.
func retryAfterFromError(err error) time.Duration {
	var ce ace.CategorizedError
	if errors.As(err, &ce) {
		return ce.RetryAfter()
	}
	return 0
}
