package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/fgiusti90/psico-app/ledger"
	"github.com/fgiusti90/psico-app/model"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Store persists practice records. Every read and write is scoped to one owner.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// New wraps db. A zero logger discards everything.
func New(db *gorm.DB, log zerolog.Logger) *Store {
	return &Store{db: db, log: log}
}

// Migrate creates or updates every application table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (s *Store) owned(ctx context.Context, ownerID string) *gorm.DB {
	return s.db.WithContext(ctx).Where("user_id = ?", ownerID)
}

// mapErr turns gorm's missing record error into a ledger.NotFoundError.
func mapErr(entity, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ledger.NotFoundError{Entity: entity, ID: id}
	}
	return fmt.Errorf("%s %s: %w", entity, id, err)
}

// LoadSnapshot reads every record of ownerID into a ledger.Snapshot.
func (s *Store) LoadSnapshot(ctx context.Context, ownerID string) (ledger.Snapshot, error) {
	var snap ledger.Snapshot
	if err := s.owned(ctx, ownerID).Order("name ASC").Find(&snap.Patients).Error; err != nil {
		return ledger.Snapshot{}, fmt.Errorf("load patients: %w", err)
	}
	if err := s.owned(ctx, ownerID).Order("start_date DESC").Find(&snap.Treatments).Error; err != nil {
		return ledger.Snapshot{}, fmt.Errorf("load treatments: %w", err)
	}
	if err := s.owned(ctx, ownerID).Order("session_date DESC").Find(&snap.Sessions).Error; err != nil {
		return ledger.Snapshot{}, fmt.Errorf("load sessions: %w", err)
	}
	if err := s.owned(ctx, ownerID).Order(adjustmentOrder).Find(&snap.FeeAdjustments).Error; err != nil {
		return ledger.Snapshot{}, fmt.Errorf("load fee adjustments: %w", err)
	}
	if err := s.owned(ctx, ownerID).Order("month DESC").Find(&snap.InflationRecords).Error; err != nil {
		return ledger.Snapshot{}, fmt.Errorf("load inflation records: %w", err)
	}
	return snap, nil
}
