package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const (
	maxAttempts = 5
	baseDelay   = 1 * time.Second
)

// APIError is returned for every non-2xx GitHub response.
type APIError struct {
	StatusCode int
	Status     string
	RetryAfter time.Duration // server-supplied Retry-After hint, 0 when absent
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: unexpected status %s", e.Status)
}

// Retryable reports whether the response indicates a transient condition:
// rate limiting (403/429) or a server-side error.
func (e *APIError) Retryable() bool {
	return e.StatusCode == 403 || e.StatusCode == 429 || e.StatusCode >= 500
}

// withRetry runs fn with exponential backoff on retryable API errors. The
// delay starts at baseDelay and doubles each attempt; a Retry-After hint from
// the server is used verbatim instead of the computed delay. Non-retryable
// errors surface immediately, and exhausting all attempts returns the last
// error.
func withRetry[T any](ctx context.Context, log *slog.Logger, fn func() (T, error)) (T, error) {
	var zero T
	delay := baseDelay

	for attempt := 1; ; attempt++ {
		v, err := fn()
		if err == nil {
			return v, nil
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.Retryable() || attempt == maxAttempts {
			return zero, err
		}

		wait := delay
		if apiErr.RetryAfter > 0 {
			wait = apiErr.RetryAfter
		}
		log.Warn("github request failed, backing off",
			"status", apiErr.StatusCode, "delay", wait, "attempt", attempt, "max_attempts", maxAttempts)

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(wait):
		}
		delay *= 2
	}
}
