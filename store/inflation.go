package store

import (
	"context"
	"fmt"
	"time"

	"github.com/fgiusti90/psico-app/ledger"
	"github.com/fgiusti90/psico-app/model"
	"gorm.io/gorm/clause"
)

// ListInflation returns the owner's inflation records, newest month first.
func (s *Store) ListInflation(ctx context.Context, ownerID string) ([]model.InflationRecord, error) {
	var records []model.InflationRecord
	if err := s.owned(ctx, ownerID).Order("month DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list inflation records: %w", err)
	}
	return records, nil
}

// UpsertInflation stores the percentage of a month, replacing any value
// already recorded for it. The month must already be normalised.
func (s *Store) UpsertInflation(ctx context.Context, rec *model.InflationRecord) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "month"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"percentage": rec.Percentage,
			"updated_at": time.Now(),
		}),
	}).Create(rec).Error
	if err != nil {
		return fmt.Errorf("upsert inflation record: %w", err)
	}
	// On conflict the generated ID was discarded; read back the stored row.
	var stored model.InflationRecord
	if err := s.owned(ctx, rec.UserID).Where("month = ?", rec.Month).First(&stored).Error; err != nil {
		return mapErr("inflation record", rec.Month, err)
	}
	*rec = stored
	return nil
}

func (s *Store) DeleteInflation(ctx context.Context, ownerID, id string) error {
	res := s.db.WithContext(ctx).Where("user_id = ? AND id = ?", ownerID, id).Delete(&model.InflationRecord{})
	if res.Error != nil {
		return fmt.Errorf("delete inflation record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &ledger.NotFoundError{Entity: "inflation record", ID: id}
	}
	return nil
}
