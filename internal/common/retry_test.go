package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneypal/internal/service"
)

func fastRetryOpts(attempts int) service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestWithRetrySucceedsFirstTry(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return nil
	}, fastRetryOpts(3))

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryRetriesRetryableErrors(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return &RetryableError{Err: errors.New("database locked"), Retryable: true}
		}
		return nil
	}, fastRetryOpts(5))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetryStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("constraint violation")
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return permanent
	}, fastRetryOpts(5))

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestWithRetryNonRetryableWrapped(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return &RetryableError{Err: errors.New("bad input"), Retryable: false}
	}, fastRetryOpts(5))

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return &RetryableError{Err: errors.New("still locked"), Retryable: true}
	}, fastRetryOpts(4))

	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.Equal(t, 4, calls)
}

func TestWithRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := WithRetry(ctx, func() error {
		calls++
		cancel()
		return &RetryableError{Err: errors.New("locked"), Retryable: true}
	}, service.RetryOptions{MaxAttempts: 10, InitialDelay: time.Hour})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryableErrorUnwrap(t *testing.T) {
	inner := errors.New("root cause")
	err := &RetryableError{Err: inner, Retryable: true}

	assert.ErrorIs(t, err, inner)
	assert.True(t, IsRetryable(err))
	assert.False(t, IsRetryable(inner))
}
