package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateLayout is the calendar date format used by every date column.
const DateLayout = "2006-01-02"

// Model carries the identifier, owner and timestamps shared by every practice record.
// Owner scoping mirrors the row-level security rule of the hosted backend: a
// practitioner only ever sees rows carrying their own user ID.
type Model struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey" example:"0b6c1a54-3f7e-4d3a-9a55-3c1d8f0f2a11"`
	UserID    string    `json:"user_id" gorm:"type:varchar(64);not null;index" example:"7f1d2c3b-0000-4000-8000-000000000001"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a random UUID when the caller did not set one.
func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// AllModels lists every table migrated by the application.
func AllModels() []interface{} {
	return []interface{}{
		&Patient{},
		&Treatment{},
		&Session{},
		&FeeAdjustment{},
		&InflationRecord{},
		&AuditLog{},
	}
}
