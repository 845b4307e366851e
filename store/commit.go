package store

import (
	"context"
	"fmt"

	"github.com/fgiusti90/psico-app/ledger"
	"github.com/fgiusti90/psico-app/model"
	"gorm.io/gorm"
)

const adjustmentOrder = "adjustment_date DESC, created_at DESC, id DESC"

// CommitChange writes the outcome of a fee ledger operation. The adjustment row
// and the treatment's current fee are written in one transaction, so either
// both land or neither does.
func (s *Store) CommitChange(ctx context.Context, change ledger.Change) error {
	adj := change.Adjustment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := writeAdjustment(tx, change.Kind, &adj); err != nil {
			return err
		}
		if !change.FeeChanged {
			return nil
		}
		res := tx.Model(&model.Treatment{}).
			Where("id = ? AND user_id = ?", change.Treatment.ID, change.Treatment.UserID).
			Update("current_fee", change.Treatment.CurrentFee)
		if res.Error != nil {
			return fmt.Errorf("update current fee: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return &ledger.NotFoundError{Entity: "treatment", ID: change.Treatment.ID}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Debug().
		Str("kind", string(change.Kind)).
		Str("adjustment_id", adj.ID).
		Str("treatment_id", adj.TreatmentID).
		Bool("fee_changed", change.FeeChanged).
		Float64("current_fee", change.Treatment.CurrentFee).
		Msg("fee change committed")
	return nil
}

func writeAdjustment(tx *gorm.DB, kind ledger.ChangeKind, adj *model.FeeAdjustment) error {
	switch kind {
	case ledger.ChangeApply:
		if err := tx.Create(adj).Error; err != nil {
			return fmt.Errorf("insert fee adjustment: %w", err)
		}
		return nil
	case ledger.ChangeEdit:
		res := tx.Model(&model.FeeAdjustment{}).
			Where("id = ? AND user_id = ?", adj.ID, adj.UserID).
			Updates(map[string]interface{}{
				"new_fee":               adj.NewFee,
				"adjustment_date":       adj.AdjustmentDate,
				"adjustment_percentage": adj.AdjustmentPercentage,
				"notes":                 adj.Notes,
			})
		if res.Error != nil {
			return fmt.Errorf("update fee adjustment: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return &ledger.NotFoundError{Entity: "fee adjustment", ID: adj.ID}
		}
		return nil
	case ledger.ChangeDelete:
		res := tx.Where("id = ? AND user_id = ?", adj.ID, adj.UserID).Delete(&model.FeeAdjustment{})
		if res.Error != nil {
			return fmt.Errorf("delete fee adjustment: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return &ledger.NotFoundError{Entity: "fee adjustment", ID: adj.ID}
		}
		return nil
	}
	return fmt.Errorf("unknown change kind %q", kind)
}

// ListAdjustments returns the adjustments of one treatment, latest first.
func (s *Store) ListAdjustments(ctx context.Context, ownerID, treatmentID string) ([]model.FeeAdjustment, error) {
	var out []model.FeeAdjustment
	err := s.owned(ctx, ownerID).
		Where("treatment_id = ?", treatmentID).
		Order(adjustmentOrder).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list fee adjustments: %w", err)
	}
	return out, nil
}
