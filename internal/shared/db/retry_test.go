package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry_TransientErrorRetries(t *testing.T) {
	attempts := 0
	err := WithRetryAttempts(context.Background(), 3, time.Millisecond, func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("Deadlock found when trying to get lock")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithRetry_BusinessErrorPassesThrough(t *testing.T) {
	sentinel := errors.New("quota exceeded")
	attempts := 0

	err := WithRetryAttempts(context.Background(), 3, time.Millisecond, func(ctx context.Context) error {
		attempts++
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, attempts)
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	attempts := 0
	err := WithRetryAttempts(context.Background(), 3, time.Millisecond, func(ctx context.Context) error {
		attempts++
		return errors.New("Lock wait timeout exceeded")
	})

	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithRetry_Success(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), func(ctx context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}
