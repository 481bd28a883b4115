package database

import (
	"errors"

	"github.com/okravets/institutions-api/model"
)

// ErrInstitutionNotFound is returned when no aggregate exists for the
// requested surrogate id. It is the only expected failure mode of the
// lookup operations; everything else is a store fault.
var ErrInstitutionNotFound = errors.New("institution not found")

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	// GORM DB access
	GetDB() interface{} // Returns *gorm.DB for GORMStore

	// Institution aggregate methods. Every operation that touches both the
	// institution row and its discipline row runs in a single transaction:
	// partial writes are never observable by subsequent reads.
	InsertInstitution(inst *model.Institution) error
	FindAllInstitutions() ([]model.Institution, error)
	FindInstitutionByID(id uint) (*model.Institution, error)
	SaveInstitution(inst *model.Institution) error
	DeleteInstitution(inst *model.Institution) error
}
