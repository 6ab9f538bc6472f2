package db

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/servly-inc/servly/internal/shared/errors"
)

const (
	defaultMaxAttempts  = 3
	defaultRetryBackoff = 20 * time.Millisecond
)

// WithRetry re-runs fn when it fails with a transient storage error (deadlock,
// lock wait timeout). Business errors pass through untouched. fn must be safe
// to re-attempt from the top: every caller re-reads state inside its own
// transaction.
func WithRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithRetryAttempts(ctx, defaultMaxAttempts, defaultRetryBackoff, fn)
}

// WithRetryAttempts is WithRetry with explicit attempt count and base backoff.
func WithRetryAttempts(ctx context.Context, attempts uint64, backoff time.Duration, fn func(ctx context.Context) error) error {
	if attempts == 0 {
		attempts = defaultMaxAttempts
	}
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	b := retry.WithMaxRetries(attempts-1, retry.NewFibonacci(backoff))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if errors.IsTransientStorageError(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}
