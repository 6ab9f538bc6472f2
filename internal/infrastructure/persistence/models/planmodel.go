package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PlanModel is the persistence model for subscription plans. This is the
// anti-corruption layer between domain and database.
type PlanModel struct {
	ID           uint   `gorm:"primarykey"`
	Name         string `gorm:"not null;size:100"`
	Slug         string `gorm:"uniqueIndex;not null;size:100"`
	Description  string `gorm:"size:500"`
	PriceMonthly uint64 `gorm:"not null;default:0;comment:cents"`
	PriceYearly  uint64 `gorm:"not null;default:0;comment:cents"`
	Features     datatypes.JSON
	// Zero means unlimited.
	MaxOrdersPerMonth    uint   `gorm:"not null;default:0"`
	MaxProposalsPerOrder uint   `gorm:"not null;default:0"`
	Status               string `gorm:"not null;size:20;default:active;index:idx_plan_status"`
	IsDefault            bool   `gorm:"not null;default:false;index:idx_plan_default"`
	Version              int    `gorm:"not null;default:1"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

func (PlanModel) TableName() string {
	return TablePlans
}

func (p *PlanModel) BeforeCreate(tx *gorm.DB) error {
	if p.Version == 0 {
		p.Version = 1
	}
	return nil
}
