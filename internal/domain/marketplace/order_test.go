package marketplace

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/servly-inc/servly/internal/domain/marketplace/valueobjects"
)

func newValidOrder(t *testing.T) *Order {
	t.Helper()
	now := time.Now().UTC()
	o, err := NewOrder(1, 10, "Landing page design", "Five responsive pages", 50000, 120000, now.Add(14*24*time.Hour), now)
	require.NoError(t, err)
	return o
}

func reconstructedOrder(t *testing.T, status vo.OrderStatus) *Order {
	t.Helper()
	now := time.Now().UTC()
	o, err := ReconstructOrder(OrderReconstructParams{
		ID:        7,
		ClientID:  1,
		ServiceID: 10,
		Title:     "Persisted order",
		BudgetMin: 1000,
		BudgetMax: 2000,
		Deadline:  now.Add(24 * time.Hour),
		Status:    status,
		Version:   3,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	return o
}

func TestNewOrder_ValidInput(t *testing.T) {
	now := time.Now().UTC()

	o, err := NewOrder(1, 10, "Logo redesign", "Vector deliverables", 10000, 30000, now.Add(48*time.Hour), now)
	require.NoError(t, err)

	assert.Equal(t, uint(1), o.ClientID())
	assert.Equal(t, uint(10), o.ServiceID())
	assert.Equal(t, vo.OrderStatusPending, o.Status())
	assert.Equal(t, 1, o.Version())
	assert.True(t, o.IsPending())
}

func TestNewOrder_InvalidInput(t *testing.T) {
	now := time.Now().UTC()
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name      string
		clientID  uint
		serviceID uint
		title     string
		budgetMin int64
		budgetMax int64
		deadline  time.Time
	}{
		{"zero client", 0, 10, "title", 100, 200, future},
		{"zero service", 1, 0, "title", 100, 200, future},
		{"empty title", 1, 10, "", 100, 200, future},
		{"title too long", 1, 10, strings.Repeat("a", 201), 100, 200, future},
		{"negative min budget", 1, 10, "title", -1, 200, future},
		{"min above max", 1, 10, "title", 300, 200, future},
		{"deadline in the past", 1, 10, "title", 100, 200, now.Add(-time.Hour)},
		{"deadline equals now", 1, 10, "title", 100, 200, now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewOrder(tt.clientID, tt.serviceID, tt.title, "", tt.budgetMin, tt.budgetMax, tt.deadline, now)
			assert.Error(t, err)
			assert.Nil(t, o)
		})
	}
}

func TestOrder_Accept(t *testing.T) {
	now := time.Now().UTC()

	o := reconstructedOrder(t, vo.OrderStatusPending)
	require.NoError(t, o.Accept(now))
	assert.Equal(t, vo.OrderStatusAccepted, o.Status())
	assert.Equal(t, 4, o.Version())

	for _, status := range []vo.OrderStatus{
		vo.OrderStatusAccepted,
		vo.OrderStatusInProgress,
		vo.OrderStatusCompleted,
		vo.OrderStatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			o := reconstructedOrder(t, status)
			err := o.Accept(now)
			assert.ErrorIs(t, err, ErrOrderAlreadyDecided)
		})
	}
}

func TestOrder_Lifecycle(t *testing.T) {
	now := time.Now().UTC()

	o := reconstructedOrder(t, vo.OrderStatusPending)
	require.NoError(t, o.Accept(now))
	require.NoError(t, o.Start(now))
	assert.Equal(t, vo.OrderStatusInProgress, o.Status())
	require.NoError(t, o.Complete(now))
	assert.Equal(t, vo.OrderStatusCompleted, o.Status())

	err := o.Cancel(now)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestOrder_Cancel(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		status  vo.OrderStatus
		wantErr bool
	}{
		{vo.OrderStatusPending, false},
		{vo.OrderStatusAccepted, false},
		{vo.OrderStatusInProgress, false},
		{vo.OrderStatusCompleted, true},
		{vo.OrderStatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			o := reconstructedOrder(t, tt.status)
			err := o.Cancel(now)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatusTransition)
			} else {
				require.NoError(t, err)
				assert.Equal(t, vo.OrderStatusCancelled, o.Status())
			}
		})
	}
}

func TestOrder_InvalidTransitions(t *testing.T) {
	now := time.Now().UTC()

	o := reconstructedOrder(t, vo.OrderStatusPending)
	assert.ErrorIs(t, o.Start(now), ErrInvalidStatusTransition)
	assert.ErrorIs(t, o.Complete(now), ErrInvalidStatusTransition)

	o = reconstructedOrder(t, vo.OrderStatusAccepted)
	assert.ErrorIs(t, o.Complete(now), ErrInvalidStatusTransition)
}

func TestOrder_CanSoftDelete(t *testing.T) {
	assert.True(t, reconstructedOrder(t, vo.OrderStatusPending).CanSoftDelete())
	assert.False(t, reconstructedOrder(t, vo.OrderStatusAccepted).CanSoftDelete())
	assert.False(t, reconstructedOrder(t, vo.OrderStatusInProgress).CanSoftDelete())
	assert.False(t, reconstructedOrder(t, vo.OrderStatusCompleted).CanSoftDelete())
	assert.False(t, reconstructedOrder(t, vo.OrderStatusCancelled).CanSoftDelete())
}

func TestOrder_SetID(t *testing.T) {
	o := newValidOrder(t)

	require.NoError(t, o.SetID(42))
	assert.Equal(t, uint(42), o.ID())

	assert.Error(t, o.SetID(43))

	o2 := newValidOrder(t)
	assert.Error(t, o2.SetID(0))
}

func TestReconstructOrder_Invalid(t *testing.T) {
	now := time.Now().UTC()

	_, err := ReconstructOrder(OrderReconstructParams{ClientID: 1, Status: vo.OrderStatusPending})
	assert.Error(t, err)

	_, err = ReconstructOrder(OrderReconstructParams{ID: 1, Status: vo.OrderStatusPending})
	assert.Error(t, err)

	_, err = ReconstructOrder(OrderReconstructParams{
		ID: 1, ClientID: 1, Status: vo.OrderStatus("UNKNOWN"), CreatedAt: now, UpdatedAt: now,
	})
	assert.Error(t, err)
}
