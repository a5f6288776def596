package github

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestWithRetry_SucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	result, err := withRetry(context.Background(), discardLogger(), func() (string, error) {
		attempts++
		if attempts < 3 {
			return "", &APIError{StatusCode: 429, Status: "429 Too Many Requests", RetryAfter: time.Millisecond}
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, attempts)
}

func TestWithRetry_NonRetryableSurfacesImmediately(t *testing.T) {
	attempts := 0
	_, err := withRetry(context.Background(), discardLogger(), func() (int, error) {
		attempts++
		return 0, &APIError{StatusCode: 404, Status: "404 Not Found"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestWithRetry_NonAPIErrorSurfacesImmediately(t *testing.T) {
	attempts := 0
	boom := errors.New("connection refused")
	_, err := withRetry(context.Background(), discardLogger(), func() (int, error) {
		attempts++
		return 0, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}

func TestWithRetry_ExhaustsAttemptsAndReturnsLastError(t *testing.T) {
	attempts := 0
	_, err := withRetry(context.Background(), discardLogger(), func() (int, error) {
		attempts++
		return 0, &APIError{StatusCode: 503, Status: "503 Service Unavailable", RetryAfter: time.Millisecond}
	})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 503, apiErr.StatusCode)
	assert.Equal(t, maxAttempts, attempts)
}

func TestWithRetry_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := withRetry(ctx, discardLogger(), func() (int, error) {
		attempts++
		// No Retry-After hint, so the computed one-second delay applies and
		// cancellation wins the race.
		return 0, &APIError{StatusCode: 500, Status: "500 Internal Server Error"}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestAPIError_Retryable(t *testing.T) {
	assert.True(t, (&APIError{StatusCode: 403}).Retryable())
	assert.True(t, (&APIError{StatusCode: 429}).Retryable())
	assert.True(t, (&APIError{StatusCode: 500}).Retryable())
	assert.True(t, (&APIError{StatusCode: 502}).Retryable())
	assert.False(t, (&APIError{StatusCode: 400}).Retryable())
	assert.False(t, (&APIError{StatusCode: 404}).Retryable())
	assert.False(t, (&APIError{StatusCode: 422}).Retryable())
}
