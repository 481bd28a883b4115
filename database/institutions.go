package database

import (
	"errors"

	"github.com/okravets/institutions-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InsertInstitution persists a new aggregate and assigns surrogate ids to
// both the institution and its discipline. Parent and child are written in
// one transaction: if the discipline insert fails the institution row is
// rolled back too.
func (s *GORMStore) InsertInstitution(inst *model.Institution) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		discipline := inst.Discipline

		inst.ID = 0
		inst.Discipline = model.Discipline{}
		if err := tx.Omit(clause.Associations).Create(inst).Error; err != nil {
			return err
		}

		discipline.ID = 0
		discipline.InstitutionID = inst.ID
		if err := tx.Create(&discipline).Error; err != nil {
			return err
		}

		inst.Discipline = discipline
		return nil
	})
}

// FindAllInstitutions returns every persisted aggregate with its discipline
// loaded. An empty catalog yields an empty slice, not an error.
func (s *GORMStore) FindAllInstitutions() ([]model.Institution, error) {
	institutions := []model.Institution{}
	err := s.db.Preload("Discipline").Order("id").Find(&institutions).Error
	return institutions, err
}

// FindInstitutionByID returns the aggregate for the given id, or
// ErrInstitutionNotFound if no such row exists.
func (s *GORMStore) FindInstitutionByID(id uint) (*model.Institution, error) {
	var inst model.Institution
	err := s.db.Preload("Discipline").First(&inst, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstitutionNotFound
		}
		return nil, err
	}
	return &inst, nil
}

// SaveInstitution upserts an already-persisted aggregate. The discipline is
// always replaced wholesale: the previous child row is deleted and the new
// one inserted under a fresh id, in the same transaction as the parent
// update, so the one-to-one invariant holds even if the write fails halfway.
func (s *GORMStore) SaveInstitution(inst *model.Institution) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		discipline := inst.Discipline

		inst.Discipline = model.Discipline{}
		if err := tx.Omit(clause.Associations).Save(inst).Error; err != nil {
			return err
		}

		if err := tx.Where("institution_id = ?", inst.ID).Delete(&model.Discipline{}).Error; err != nil {
			return err
		}

		discipline.ID = 0
		discipline.InstitutionID = inst.ID
		if err := tx.Create(&discipline).Error; err != nil {
			return err
		}

		inst.Discipline = discipline
		return nil
	})
}

// DeleteInstitution removes the aggregate: discipline row first, then the
// institution row, in one transaction. No soft-delete.
func (s *GORMStore) DeleteInstitution(inst *model.Institution) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("institution_id = ?", inst.ID).Delete(&model.Discipline{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Institution{}, inst.ID).Error
	})
}
