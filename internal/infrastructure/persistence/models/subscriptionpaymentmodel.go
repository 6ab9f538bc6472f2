package models

import (
	"time"

	"gorm.io/gorm"
)

// SubscriptionPaymentModel records money movement against a subscription.
// Payment rows are immutable at the lifecycle level: they can be soft-deleted
// for bookkeeping views but never physically removed.
type SubscriptionPaymentModel struct {
	ID             uint   `gorm:"primarykey"`
	SubscriptionID uint   `gorm:"not null;index:idx_payment_subscription"`
	PlanID         uint   `gorm:"not null"`
	Amount         uint64 `gorm:"not null;comment:cents"`
	Currency       string `gorm:"not null;size:3;default:BRL"`
	Status         string `gorm:"not null;size:20"`
	PaidAt         *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (SubscriptionPaymentModel) TableName() string {
	return TableSubscriptionPayments
}
