package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/okravets/institutions-api/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *InstitutionService {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	store := database.NewGORMStore(db)
	require.NoError(t, store.Init())
	return NewInstitutionService(store)
}

func sampleRequest(name string) InstitutionRequest {
	return InstitutionRequest{
		Name:                  name,
		AccreditationLevel:    "IV",
		Address:               "1 University St",
		FoundationDate:        "1898-08-31T00:00:00",
		FacultiesCount:        18,
		Website:               "https://ntu.example",
		HasMilitaryDepartment: true,
		Disciplines: DisciplineRequest{
			Name:           "Databases",
			Institution:    "Faculty of Informatics",
			SpecialityCode: "121",
			Semester:       4,
			HoursCount:     120,
			ApprovalDate:   "2021-06-15T10:00:00",
			HasExam:        true,
		},
	}
}

func TestCreateRoundTrip(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(sampleRequest("NTU"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.NotZero(t, created.Disciplines.ID)

	read, err := svc.ReadByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, created, read)

	require.Equal(t, "1898-08-31T00:00:00", read.FoundationDate)
	require.Equal(t, "2021-06-15T10:00:00", read.Disciplines.ApprovalDate)
}

func TestReadAllEmptyCatalog(t *testing.T) {
	svc := newTestService(t)

	all, err := svc.ReadAll()
	require.NoError(t, err)
	require.NotNil(t, all)
	require.Empty(t, all)
}

func TestReadAllReturnsEveryAggregate(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.Create(sampleRequest("First"))
	require.NoError(t, err)
	second, err := svc.Create(sampleRequest("Second"))
	require.NoError(t, err)

	all, err := svc.ReadAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, *first, all[0])
	require.Equal(t, *second, all[1])
}

func TestUpdateReplacesDiscipline(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(sampleRequest("NTU"))
	require.NoError(t, err)
	oldDisciplineID := created.Disciplines.ID

	req := sampleRequest("NTU Renamed")
	req.FacultiesCount = 20
	req.Disciplines.Name = "Operating Systems"
	req.Disciplines.Semester = 6

	updated, err := svc.UpdateByID(created.ID, req)
	require.NoError(t, err)

	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "NTU Renamed", updated.Name)
	require.Equal(t, 20, updated.FacultiesCount)
	require.Equal(t, "Operating Systems", updated.Disciplines.Name)

	// The discipline is replaced, never patched: its old id is retired
	require.NotEqual(t, oldDisciplineID, updated.Disciplines.ID)

	read, err := svc.ReadByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, updated, read)
}

func TestDeleteReturnsSnapshotThenNotFound(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(sampleRequest("NTU"))
	require.NoError(t, err)

	beforeDelete, err := svc.ReadByID(created.ID)
	require.NoError(t, err)

	deleted, err := svc.DeleteByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, beforeDelete, deleted)

	_, err = svc.ReadByID(created.ID)
	require.ErrorIs(t, err, ErrInstitutionNotFound)
}

func TestOperationsOnAbsentID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ReadByID(999)
	require.ErrorIs(t, err, ErrInstitutionNotFound)

	_, err = svc.UpdateByID(999, sampleRequest("NTU"))
	require.ErrorIs(t, err, ErrInstitutionNotFound)

	_, err = svc.DeleteByID(999)
	require.ErrorIs(t, err, ErrInstitutionNotFound)

	// A deleted id behaves like a never-issued one
	created, err := svc.Create(sampleRequest("Ephemeral"))
	require.NoError(t, err)
	_, err = svc.DeleteByID(created.ID)
	require.NoError(t, err)
	_, err = svc.DeleteByID(created.ID)
	require.ErrorIs(t, err, ErrInstitutionNotFound)
}

func TestCreateIgnoresMalformedDates(t *testing.T) {
	svc := newTestService(t)

	req := sampleRequest("NTU")
	req.FoundationDate = "31/08/1898"
	req.Disciplines.ApprovalDate = "yesterday"

	created, err := svc.Create(req)
	require.NoError(t, err)

	// The fallback substitutes the current instant; the response still
	// carries well-formed wire dates
	require.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`, created.FoundationDate)
	require.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`, created.Disciplines.ApprovalDate)
}

func TestConcurrentCreatesKeepChildrenSeparate(t *testing.T) {
	svc := newTestService(t)

	const n = 8
	results := make([]*InstitutionResponse, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Create(sampleRequest(fmt.Sprintf("Institution %d", i)))
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
	}

	seenDisciplines := make(map[uint]uint, n)
	for _, resp := range results {
		owner, dup := seenDisciplines[resp.Disciplines.ID]
		require.False(t, dup, "discipline %d owned by both %d and %d", resp.Disciplines.ID, owner, resp.ID)
		seenDisciplines[resp.Disciplines.ID] = resp.ID
	}

	for _, resp := range results {
		read, err := svc.ReadByID(resp.ID)
		require.NoError(t, err)
		require.Equal(t, resp.Disciplines.ID, read.Disciplines.ID)
		require.Equal(t, resp.Name, read.Name)
	}
}
