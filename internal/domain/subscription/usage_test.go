package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUsageCounter(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	u, err := NewUsageCounter(3, start)
	require.NoError(t, err)
	assert.Equal(t, uint(3), u.SubscriptionID())
	assert.Equal(t, uint(0), u.OrdersCreated())

	_, err = NewUsageCounter(0, start)
	assert.Error(t, err)

	_, err = NewUsageCounter(3, time.Time{})
	assert.Error(t, err)
}

func TestUsageCounter_IncrementOrders(t *testing.T) {
	now := time.Now().UTC()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	u, err := NewUsageCounter(3, start)
	require.NoError(t, err)

	u.IncrementOrders(now)
	u.IncrementOrders(now)
	assert.Equal(t, uint(2), u.OrdersCreated())
}

func TestUsageCounter_ResetForPeriod(t *testing.T) {
	now := time.Now().UTC()
	jan := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	u, err := ReconstructUsageCounter(1, 3, jan, 7, now)
	require.NoError(t, err)

	assert.True(t, u.ResetForPeriod(feb, now))
	assert.Equal(t, feb, u.PeriodStart())
	assert.Equal(t, uint(0), u.OrdersCreated())

	// resetting for the same period again is a no-op
	u.IncrementOrders(now)
	assert.False(t, u.ResetForPeriod(feb, now))
	assert.Equal(t, uint(1), u.OrdersCreated())
}
