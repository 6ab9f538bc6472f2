package models

import "time"

// UsageCounterModel tracks per-period resource consumption. One row per
// subscription; the row is reset in place on period rollover. No soft delete:
// counters live and die with their subscription.
type UsageCounterModel struct {
	ID             uint      `gorm:"primarykey"`
	SubscriptionID uint      `gorm:"uniqueIndex:idx_counter_subscription;not null"`
	PeriodStart    time.Time `gorm:"not null"`
	OrdersCreated  uint      `gorm:"not null;default:0"`
	UpdatedAt      time.Time
}

func (UsageCounterModel) TableName() string {
	return TableUsageCounters
}
