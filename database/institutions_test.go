package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/okravets/institutions-api/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *GORMStore {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// In-memory sqlite: a second connection would see an empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	store := NewGORMStore(db)
	require.NoError(t, store.Init())
	return store
}

func sampleAggregate() model.Institution {
	return model.Institution{
		Name:                  "National Technical University",
		AccreditationLevel:    "IV",
		Address:               "1 University St",
		FoundationDate:        time.Date(1898, 8, 31, 0, 0, 0, 0, time.UTC),
		FacultiesCount:        18,
		Website:               "https://ntu.example",
		HasMilitaryDepartment: true,
		Discipline: model.Discipline{
			Name:           "Databases",
			Institution:    "Faculty of Informatics",
			SpecialityCode: "121",
			Semester:       4,
			HoursCount:     120,
			ApprovalDate:   time.Date(2021, 6, 15, 10, 0, 0, 0, time.UTC),
			HasExam:        true,
		},
	}
}

func TestInsertInstitutionAssignsIDs(t *testing.T) {
	store := newTestStore(t)

	inst := sampleAggregate()
	require.NoError(t, store.InsertInstitution(&inst))

	require.NotZero(t, inst.ID)
	require.NotZero(t, inst.Discipline.ID)
	require.Equal(t, inst.ID, inst.Discipline.InstitutionID)

	found, err := store.FindInstitutionByID(inst.ID)
	require.NoError(t, err)
	require.Equal(t, inst.Name, found.Name)
	require.Equal(t, inst.Discipline.ID, found.Discipline.ID)
	require.Equal(t, "Databases", found.Discipline.Name)
}

func TestFindInstitutionByIDNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.FindInstitutionByID(12345)
	require.ErrorIs(t, err, ErrInstitutionNotFound)
}

func TestFindAllInstitutionsEmpty(t *testing.T) {
	store := newTestStore(t)

	all, err := store.FindAllInstitutions()
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestSaveInstitutionReplacesDiscipline(t *testing.T) {
	store := newTestStore(t)

	inst := sampleAggregate()
	require.NoError(t, store.InsertInstitution(&inst))
	oldDisciplineID := inst.Discipline.ID

	inst.Name = "Renamed University"
	inst.Discipline = model.Discipline{
		Name:           "Operating Systems",
		Institution:    "Faculty of Informatics",
		SpecialityCode: "123",
		Semester:       5,
		HoursCount:     90,
		ApprovalDate:   time.Date(2022, 1, 10, 12, 0, 0, 0, time.UTC),
		HasExam:        false,
	}
	require.NoError(t, store.SaveInstitution(&inst))

	require.NotZero(t, inst.Discipline.ID)
	require.NotEqual(t, oldDisciplineID, inst.Discipline.ID)

	// The old child row must be gone, not orphaned
	db := store.GetDB().(*gorm.DB)
	var orphans int64
	require.NoError(t, db.Model(&model.Discipline{}).Where("id = ?", oldDisciplineID).Count(&orphans).Error)
	require.Zero(t, orphans)

	// Exactly one discipline attached to the institution
	var attached int64
	require.NoError(t, db.Model(&model.Discipline{}).Where("institution_id = ?", inst.ID).Count(&attached).Error)
	require.EqualValues(t, 1, attached)

	found, err := store.FindInstitutionByID(inst.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed University", found.Name)
	require.Equal(t, "Operating Systems", found.Discipline.Name)
}

func TestDeleteInstitutionRemovesBothRows(t *testing.T) {
	store := newTestStore(t)

	inst := sampleAggregate()
	require.NoError(t, store.InsertInstitution(&inst))

	require.NoError(t, store.DeleteInstitution(&inst))

	_, err := store.FindInstitutionByID(inst.ID)
	require.ErrorIs(t, err, ErrInstitutionNotFound)

	db := store.GetDB().(*gorm.DB)
	var disciplines int64
	require.NoError(t, db.Model(&model.Discipline{}).Where("institution_id = ?", inst.ID).Count(&disciplines).Error)
	require.Zero(t, disciplines)
}
