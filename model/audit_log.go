package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog represents the audit trail for catalog mutations
type AuditLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Actor      string         `gorm:"type:varchar(255);not null;index" json:"actor"`
	Action     string         `gorm:"type:varchar(100);not null" json:"action"` // e.g., "institution_create", "institution_delete"
	Resource   string         `gorm:"type:varchar(100)" json:"resource"`
	ResourceID uint           `json:"resource_id"`
	OldValue   datatypes.JSON `json:"old_value"`
	NewValue   datatypes.JSON `json:"new_value"`
	CreatedAt  time.Time      `json:"created_at"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}
