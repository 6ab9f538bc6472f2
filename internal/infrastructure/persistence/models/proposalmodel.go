package models

import (
	"time"

	"gorm.io/gorm"
)

// ProposalModel is the persistence model for proposals. Price is in cents.
type ProposalModel struct {
	ID            uint      `gorm:"primarykey"`
	OrderID       uint      `gorm:"not null;index:idx_proposal_order"`
	ProviderID    uint      `gorm:"not null;index:idx_proposal_provider"`
	Message       string    `gorm:"type:text"`
	Price         int64     `gorm:"not null"`
	EstimatedDays uint      `gorm:"not null"`
	ExpiresAt     time.Time `gorm:"not null;index:idx_proposal_expires"`
	Status        string    `gorm:"not null;size:20;index:idx_proposal_status"`
	Version       int       `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (ProposalModel) TableName() string {
	return TableProposals
}

func (p *ProposalModel) BeforeCreate(tx *gorm.DB) error {
	if p.Version == 0 {
		p.Version = 1
	}
	return nil
}
