package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InflationRecord represents the inflation percentage of one calendar month.
// Month is always the first day of the month and is unique per practitioner.
// @Description Inflation record information
type InflationRecord struct {
	ID         string    `json:"id" gorm:"type:varchar(36);primaryKey" example:"5e0f8c0c-2a43-4c11-8d0b-9d1d2e3f4a5b"`
	UserID     string    `json:"user_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_inflation_owner_month" example:"7f1d2c3b-0000-4000-8000-000000000001"`
	Month      string    `json:"month" gorm:"type:varchar(10);not null;uniqueIndex:idx_inflation_owner_month" example:"2024-01-01"`
	Percentage float64   `json:"percentage" gorm:"not null" example:"5.2"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BeforeCreate assigns a random UUID when the caller did not set one.
func (r *InflationRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// InflationRecordRequest represents an inflation record create request.
// Month accepts either YYYY-MM or YYYY-MM-DD.
// @Description Inflation record request information
type InflationRecordRequest struct {
	Month      string   `json:"month" example:"2024-01"`
	Percentage *float64 `json:"percentage" example:"5.2"`
}
