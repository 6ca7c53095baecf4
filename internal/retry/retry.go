// Package retry provides a bounded-retry decorator for fallible operations.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Do runs op up to maxAttempts times, returning the first successful result.
// The delay before attempt k+1 is baseDelay*k (linear backoff), applied only
// between attempts. If all attempts fail, the last error is returned. The
// wrapper never inspects or alters the underlying error.
func Do[T any](ctx context.Context, maxAttempts int, baseDelay time.Duration, op func(context.Context) (T, error)) (T, error) {
	var zero T
	if maxAttempts < 1 {
		return zero, fmt.Errorf("maxAttempts must be at least 1, got %d", maxAttempts)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == maxAttempts {
			break
		}

		select {
		case <-time.After(baseDelay * time.Duration(attempt)):
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	return zero, lastErr
}
