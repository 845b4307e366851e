package model

// Treatment represents a course of care for a patient, with its own fee history
// @Description Treatment information
type Treatment struct {
	Model
	PatientID  string  `json:"patient_id" gorm:"type:varchar(36);not null;index" example:"0b6c1a54-3f7e-4d3a-9a55-3c1d8f0f2a11"`
	StartDate  string  `json:"start_date" gorm:"type:varchar(10);not null" example:"2024-01-01"`
	EndDate    *string `json:"end_date" gorm:"type:varchar(10)" example:"2024-12-20"`
	InitialFee float64 `json:"initial_fee" gorm:"not null" example:"10000"`
	CurrentFee float64 `json:"current_fee" gorm:"not null" example:"10800"`
	IsActive   bool    `json:"is_active" gorm:"not null;default:true" example:"true"`
}

// TreatmentRequest represents a treatment create or update request.
// InitialFee is only honoured on creation and CurrentFee is never accepted:
// the current fee moves exclusively through fee adjustments.
// @Description Treatment request information
type TreatmentRequest struct {
	PatientID  string   `json:"patient_id" example:"0b6c1a54-3f7e-4d3a-9a55-3c1d8f0f2a11"`
	StartDate  *string  `json:"start_date" example:"2024-01-01"`
	EndDate    *string  `json:"end_date,omitempty" example:"2024-12-20"`
	InitialFee *float64 `json:"initial_fee,omitempty" example:"10000"`
	IsActive   *bool    `json:"is_active,omitempty" example:"true"`
}
