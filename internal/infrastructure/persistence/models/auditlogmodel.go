package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLogModel is an append-only trail of lifecycle operations. Immutable:
// hard deletes are rejected at the store level.
type AuditLogModel struct {
	ID         uint   `gorm:"primarykey"`
	ActorID    uint   `gorm:"not null;index:idx_audit_actor"`
	Action     string `gorm:"not null;size:50"`
	EntityKind string `gorm:"not null;size:30;index:idx_audit_entity,priority:1"`
	EntityID   uint   `gorm:"not null;index:idx_audit_entity,priority:2"`
	Detail     datatypes.JSON
	CreatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (AuditLogModel) TableName() string {
	return TableAuditLogs
}
