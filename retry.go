package toto

import (
	"context"
	"time"
)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Retry calls op until it succeeds, waiting delays[i] before retry i+1.
// It makes len(delays)+1 attempts at most and returns the last error.
// The logger, if provided, is called for each retry attempt.
func Retry(ctx context.Context, name string, delays []time.Duration, logger LogFunc, op func(ctx context.Context) error) error {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		// Invalid input will not get better on a second try.
		if ErrorCode(err) == EINVALID || attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", name, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return lastErr
}
