package store

import (
	"context"
	"fmt"

	"github.com/fgiusti90/psico-app/ledger"
	"github.com/fgiusti90/psico-app/model"
	"gorm.io/gorm"
)

// ListTreatments returns the owner's treatments, newest start date first.
// A non-empty patientID narrows the list to that patient.
func (s *Store) ListTreatments(ctx context.Context, ownerID, patientID string) ([]model.Treatment, error) {
	q := s.owned(ctx, ownerID)
	if patientID != "" {
		q = q.Where("patient_id = ?", patientID)
	}
	var treatments []model.Treatment
	if err := q.Order("start_date DESC").Find(&treatments).Error; err != nil {
		return nil, fmt.Errorf("list treatments: %w", err)
	}
	return treatments, nil
}

func (s *Store) GetTreatment(ctx context.Context, ownerID, id string) (model.Treatment, error) {
	var t model.Treatment
	if err := s.owned(ctx, ownerID).Where("id = ?", id).First(&t).Error; err != nil {
		return model.Treatment{}, mapErr("treatment", id, err)
	}
	return t, nil
}

// CreateTreatment inserts a treatment for one of the owner's patients. The
// current fee starts at the initial fee.
func (s *Store) CreateTreatment(ctx context.Context, t *model.Treatment) error {
	if _, err := s.GetPatient(ctx, t.UserID, t.PatientID); err != nil {
		return err
	}
	t.CurrentFee = t.InitialFee
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create treatment: %w", err)
	}
	return nil
}

// SaveTreatment writes the editable columns of a treatment. The initial and
// current fees are never touched here.
func (s *Store) SaveTreatment(ctx context.Context, t *model.Treatment) error {
	if _, err := s.GetPatient(ctx, t.UserID, t.PatientID); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&model.Treatment{}).
		Where("id = ? AND user_id = ?", t.ID, t.UserID).
		Select("patient_id", "start_date", "end_date", "is_active").
		Updates(t)
	if res.Error != nil {
		return fmt.Errorf("update treatment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &ledger.NotFoundError{Entity: "treatment", ID: t.ID}
	}
	return nil
}

// DeleteTreatment removes a treatment with its sessions and fee adjustments.
func (s *Store) DeleteTreatment(ctx context.Context, ownerID, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteTreatmentChildren(tx, ownerID, []string{id}); err != nil {
			return err
		}
		res := tx.Where("user_id = ? AND id = ?", ownerID, id).Delete(&model.Treatment{})
		if res.Error != nil {
			return fmt.Errorf("delete treatment: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return &ledger.NotFoundError{Entity: "treatment", ID: id}
		}
		return nil
	})
}

func deleteTreatmentChildren(tx *gorm.DB, ownerID string, treatmentIDs []string) error {
	if len(treatmentIDs) == 0 {
		return nil
	}
	if err := tx.Where("user_id = ? AND treatment_id IN ?", ownerID, treatmentIDs).Delete(&model.Session{}).Error; err != nil {
		return fmt.Errorf("delete sessions: %w", err)
	}
	if err := tx.Where("user_id = ? AND treatment_id IN ?", ownerID, treatmentIDs).Delete(&model.FeeAdjustment{}).Error; err != nil {
		return fmt.Errorf("delete fee adjustments: %w", err)
	}
	return nil
}
