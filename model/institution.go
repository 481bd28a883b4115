package model

import (
	"time"
)

// Institution represents an educational institution together with the single
// discipline it owns. The discipline row never exists on its own: it is
// created, replaced and deleted with its parent.
type Institution struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	Name                  string    `gorm:"not null" json:"name"`
	AccreditationLevel    string    `gorm:"type:varchar(255);not null" json:"accreditation_level"`
	Address               string    `gorm:"type:varchar(512);not null" json:"address"`
	FoundationDate        time.Time `gorm:"not null" json:"foundation_date"`
	FacultiesCount        int       `gorm:"not null;default:0" json:"faculties_count"`
	Website               string    `gorm:"type:varchar(255);not null" json:"website"`
	HasMilitaryDepartment bool      `gorm:"not null;default:false" json:"has_military_department"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`

	// Relationships
	Discipline Discipline `gorm:"foreignKey:InstitutionID;constraint:OnDelete:CASCADE" json:"discipline,omitempty"`
}

// TableName specifies the table name for Institution
func (Institution) TableName() string {
	return "educational_institutions"
}

// Discipline represents the one discipline owned by an institution.
// InstitutionID is bookkeeping only: it is never serialized outward and never
// consulted for ownership decisions.
type Discipline struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	InstitutionID  uint      `gorm:"not null;uniqueIndex" json:"-"`
	Name           string    `gorm:"not null" json:"name"`
	Institution    string    `gorm:"type:varchar(255);not null" json:"institution"`
	SpecialityCode string    `gorm:"type:varchar(100);not null" json:"speciality_code"`
	Semester       int       `gorm:"not null;default:1" json:"semester"`
	HoursCount     int       `gorm:"not null;default:0" json:"hours_count"`
	ApprovalDate   time.Time `gorm:"not null" json:"approval_date"`
	HasExam        bool      `gorm:"not null;default:false" json:"has_exam"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name for Discipline
func (Discipline) TableName() string {
	return "disciplines"
}

// Matches reports whether two institutions refer to the same real-world
// entity: same name and same foundation instant. Surrogate ids and the
// remaining attributes are ignored.
func (i Institution) Matches(other Institution) bool {
	return i.Name == other.Name && i.FoundationDate.Equal(other.FoundationDate)
}

// Matches reports whether two disciplines are equivalent by name and
// approval instant.
func (d Discipline) Matches(other Discipline) bool {
	return d.Name == other.Name && d.ApprovalDate.Equal(other.ApprovalDate)
}

// Persisted reports whether the record has been assigned a surrogate id by
// the store. A zero id means the record has never been persisted.
func (i Institution) Persisted() bool {
	return i.ID != 0
}
