package shell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/publiclibrary/lending-go/eventstore"
	"github.com/publiclibrary/lending-go/lending/shared/shell"
)

func Test_RetryWithExponentialBackoff_SucceedsOnFirstAttempt(t *testing.T) {
	// arrange
	ctx := context.Background()
	calls := 0

	// act
	metrics, err := shell.RetryWithExponentialBackoff(ctx, func(_ context.Context) error {
		calls++
		return nil
	})

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, metrics.Attempts)
	assert.Equal(t, time.Duration(0), metrics.TotalDelay)
	assert.Equal(t, "none", metrics.LastErrorType)
	assert.False(t, metrics.RetriesExhausted)
}

func Test_RetryWithExponentialBackoff_RetriesConcurrencyConflicts(t *testing.T) {
	// arrange
	ctx := context.Background()
	calls := 0

	// act
	metrics, err := shell.RetryWithExponentialBackoff(
		ctx,
		func(_ context.Context) error {
			calls++
			if calls < 3 {
				return eventstore.ErrConcurrencyConflict
			}
			return nil
		},
		shell.WithBaseDelay(time.Millisecond),
	)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, metrics.Attempts)
	assert.Positive(t, metrics.TotalDelay)
	assert.False(t, metrics.RetriesExhausted)
}

func Test_RetryWithExponentialBackoff_FailsFastOnPermanentErrors(t *testing.T) {
	// arrange
	ctx := context.Background()
	permanentErr := errors.New("patron not found")
	calls := 0

	// act
	metrics, err := shell.RetryWithExponentialBackoff(ctx, func(_ context.Context) error {
		calls++
		return permanentErr
	})

	// assert
	require.ErrorIs(t, err, permanentErr)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "other", metrics.LastErrorType)
	assert.False(t, metrics.RetriesExhausted)
}

func Test_RetryWithExponentialBackoff_ExhaustsRetries(t *testing.T) {
	// arrange
	ctx := context.Background()
	calls := 0

	// act
	metrics, err := shell.RetryWithExponentialBackoff(
		ctx,
		func(_ context.Context) error {
			calls++
			return eventstore.ErrConcurrencyConflict
		},
		shell.WithMaxAttempts(3),
		shell.WithBaseDelay(time.Millisecond),
	)

	// assert
	require.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, metrics.Attempts)
	assert.True(t, metrics.RetriesExhausted)
	assert.Equal(t, "concurrency_conflict", metrics.LastErrorType)
}

func Test_RetryWithExponentialBackoff_RespectsContextCancellation(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	// act
	metrics, err := shell.RetryWithExponentialBackoff(
		ctx,
		func(_ context.Context) error {
			calls++
			cancel()
			return eventstore.ErrConcurrencyConflict
		},
		shell.WithBaseDelay(50*time.Millisecond),
	)

	// assert
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "context_canceled", metrics.LastErrorType)
}

func Test_RetryWithExponentialBackoff_RejectsInvalidOptions(t *testing.T) {
	ctx := context.Background()
	noop := func(_ context.Context) error { return nil }

	_, err := shell.RetryWithExponentialBackoff(ctx, noop, shell.WithMaxAttempts(0))
	require.ErrorIs(t, err, shell.ErrInvalidMaxAttempts)

	_, err = shell.RetryWithExponentialBackoff(ctx, noop, shell.WithBaseDelay(-time.Second))
	require.ErrorIs(t, err, shell.ErrNegativeBaseDelay)

	_, err = shell.RetryWithExponentialBackoff(ctx, noop, shell.WithJitterFactor(1.5))
	require.ErrorIs(t, err, shell.ErrInvalidJitterFactor)
}
