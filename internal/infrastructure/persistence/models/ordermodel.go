package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderModel is the persistence model for marketplace orders. Budgets are in
// cents.
type OrderModel struct {
	ID          uint      `gorm:"primarykey"`
	ClientID    uint      `gorm:"not null;index:idx_order_client"`
	ServiceID   uint      `gorm:"not null;index:idx_order_service"`
	Title       string    `gorm:"not null;size:200"`
	Description string    `gorm:"type:text"`
	BudgetMin   int64     `gorm:"not null"`
	BudgetMax   int64     `gorm:"not null"`
	Deadline    time.Time `gorm:"not null"`
	Status      string    `gorm:"not null;size:20;index:idx_order_status"`
	Version     int       `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (OrderModel) TableName() string {
	return TableOrders
}

func (o *OrderModel) BeforeCreate(tx *gorm.DB) error {
	if o.Version == 0 {
		o.Version = 1
	}
	return nil
}
