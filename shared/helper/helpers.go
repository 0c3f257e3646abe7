package helper

import (
	"context"
	"errors"
	"fmt"
)

var ErrMaxAttempts = errors.New("max attempts reached")

// Retry calls fn until it succeeds, maxAttempts calls have failed, or ctx is done.
// The returned error wraps both ErrMaxAttempts and the last failure.
func Retry(ctx context.Context, maxAttempts int, fn func() error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	var lastErr error
	for numAttempts := 1; ; numAttempts++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if numAttempts >= maxAttempts {
			return fmt.Errorf("%w: %d, %w", ErrMaxAttempts, numAttempts, lastErr)
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w (last failure: %w)", err, lastErr)
		}
	}
}
