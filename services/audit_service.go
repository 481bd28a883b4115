package services

import (
	"encoding/json"
	"log"

	"github.com/okravets/institutions-api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditService appends audit trail rows for catalog mutations. Audit writes
// are best-effort: a failed append is logged, never surfaced to the caller.
type AuditService struct {
	db *gorm.DB
}

// NewAuditService creates a new audit service
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Record appends an audit row. oldValue and newValue may be nil; anything
// else is stored as its JSON encoding.
func (s *AuditService) Record(actor, action string, resourceID uint, oldValue, newValue interface{}) {
	entry := model.AuditLog{
		Actor:      actor,
		Action:     action,
		Resource:   "institutions",
		ResourceID: resourceID,
		OldValue:   toJSON(oldValue),
		NewValue:   toJSON(newValue),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		log.Println("Failed to write audit log:", err)
	}
}

func toJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}
