package models

import (
	"time"

	"gorm.io/gorm"
)

// SubscriptionModel is the persistence model for subscriptions.
type SubscriptionModel struct {
	ID          uint      `gorm:"primarykey"`
	UserID      uint      `gorm:"uniqueIndex:idx_user_subscription;not null"`
	PlanID      uint      `gorm:"not null;index:idx_plan_subscription"`
	Status      string    `gorm:"not null;size:20;index:idx_subscription_status"`
	PeriodStart time.Time `gorm:"not null"`
	PeriodEnd   time.Time `gorm:"not null;index:idx_period_end"`
	AutoRenew   bool      `gorm:"not null;default:true"`
	CancelledAt *time.Time
	Version     int `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (SubscriptionModel) TableName() string {
	return TableSubscriptions
}

func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}
