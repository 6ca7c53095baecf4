package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	t.Parallel()

	calls := 0
	got, err := Do(context.Background(), 3, time.Millisecond, func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)
}

func TestDo_SucceedsAfterFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	got, err := Do(context.Background(), 3, time.Millisecond, func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttemptsAndReturnsLastError(t *testing.T) {
	t.Parallel()

	errFirst := errors.New("first")
	errLast := errors.New("last")

	calls := 0
	_, err := Do(context.Background(), 3, time.Millisecond, func(ctx context.Context) (struct{}, error) {
		calls++
		if calls < 3 {
			return struct{}{}, errFirst
		}
		return struct{}{}, errLast
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, errLast)
	assert.Equal(t, 3, calls)
}

func TestDo_LinearBackoffDelays(t *testing.T) {
	t.Parallel()

	base := 20 * time.Millisecond
	start := time.Now()
	calls := 0
	_, err := Do(context.Background(), 3, base, func(ctx context.Context) (struct{}, error) {
		calls++
		return struct{}{}, errors.New("always fails")
	})
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	// Delays between attempts grow linearly: base*1 then base*2.
	assert.GreaterOrEqual(t, elapsed, 3*base)
}

func TestDo_ContextCancelledDuringDelay(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	done := make(chan error, 1)
	go func() {
		_, err := Do(ctx, 5, time.Minute, func(ctx context.Context) (struct{}, error) {
			calls++
			return struct{}{}, errors.New("transient")
		})
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	case <-time.After(5 * time.Second):
		t.Fatal("Do did not return after context cancellation")
	}
}

func TestDo_SingleAttemptNoDelay(t *testing.T) {
	t.Parallel()

	start := time.Now()
	calls := 0
	_, err := Do(context.Background(), 1, time.Hour, func(ctx context.Context) (struct{}, error) {
		calls++
		return struct{}{}, errors.New("fails")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Less(t, time.Since(start), time.Second)
}
