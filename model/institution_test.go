package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInstitutionMatches(t *testing.T) {
	founded := time.Date(1898, 8, 31, 0, 0, 0, 0, time.UTC)

	a := Institution{ID: 1, Name: "NTU", FoundationDate: founded, FacultiesCount: 18}
	b := Institution{ID: 2, Name: "NTU", FoundationDate: founded, FacultiesCount: 5}

	// Equivalence ignores ids and non-identifying attributes
	assert.True(t, a.Matches(b))

	b.Name = "Other"
	assert.False(t, a.Matches(b))

	b.Name = "NTU"
	b.FoundationDate = founded.Add(time.Hour)
	assert.False(t, a.Matches(b))
}

func TestDisciplineMatches(t *testing.T) {
	approved := time.Date(2021, 6, 15, 10, 0, 0, 0, time.UTC)

	a := Discipline{ID: 1, Name: "Databases", ApprovalDate: approved, Semester: 4}
	b := Discipline{ID: 9, Name: "Databases", ApprovalDate: approved.In(time.FixedZone("EET", 7200)), Semester: 6}

	// Same instant in a different zone still matches
	assert.True(t, a.Matches(b))

	b.ApprovalDate = approved.Add(time.Minute)
	assert.False(t, a.Matches(b))
}

func TestInstitutionPersisted(t *testing.T) {
	assert.False(t, Institution{}.Persisted())
	assert.True(t, Institution{ID: 7}.Persisted())
}
