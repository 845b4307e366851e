package store

import (
	"context"
	"fmt"

	"github.com/fgiusti90/psico-app/ledger"
	"github.com/fgiusti90/psico-app/model"
	"gorm.io/gorm"
)

// ListPatients returns the owner's patients ordered by name.
func (s *Store) ListPatients(ctx context.Context, ownerID string) ([]model.Patient, error) {
	var patients []model.Patient
	if err := s.owned(ctx, ownerID).Order("name ASC").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

func (s *Store) GetPatient(ctx context.Context, ownerID, id string) (model.Patient, error) {
	var p model.Patient
	if err := s.owned(ctx, ownerID).Where("id = ?", id).First(&p).Error; err != nil {
		return model.Patient{}, mapErr("patient", id, err)
	}
	return p, nil
}

func (s *Store) CreatePatient(ctx context.Context, p *model.Patient) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create patient: %w", err)
	}
	return nil
}

// SavePatient writes every editable column of an existing patient.
func (s *Store) SavePatient(ctx context.Context, p *model.Patient) error {
	res := s.db.WithContext(ctx).Model(&model.Patient{}).
		Where("id = ? AND user_id = ?", p.ID, p.UserID).
		Select("name", "contact", "father_name", "mother_name", "status").
		Updates(p)
	if res.Error != nil {
		return fmt.Errorf("update patient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &ledger.NotFoundError{Entity: "patient", ID: p.ID}
	}
	return nil
}

// DeletePatient removes a patient with its treatments, their sessions and
// their fee adjustments.
func (s *Store) DeletePatient(ctx context.Context, ownerID, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var treatmentIDs []string
		if err := tx.Model(&model.Treatment{}).
			Where("user_id = ? AND patient_id = ?", ownerID, id).
			Pluck("id", &treatmentIDs).Error; err != nil {
			return fmt.Errorf("find patient treatments: %w", err)
		}
		if err := deleteTreatmentChildren(tx, ownerID, treatmentIDs); err != nil {
			return err
		}
		if err := tx.Where("user_id = ? AND patient_id = ?", ownerID, id).Delete(&model.Treatment{}).Error; err != nil {
			return fmt.Errorf("delete patient treatments: %w", err)
		}
		res := tx.Where("user_id = ? AND id = ?", ownerID, id).Delete(&model.Patient{})
		if res.Error != nil {
			return fmt.Errorf("delete patient: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return &ledger.NotFoundError{Entity: "patient", ID: id}
		}
		return nil
	})
}
