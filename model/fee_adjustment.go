package model

// FeeAdjustment represents a dated change to a treatment's fee
// @Description Fee adjustment information
type FeeAdjustment struct {
	Model
	TreatmentID          string  `json:"treatment_id" gorm:"type:varchar(36);not null;index" example:"0b6c1a54-3f7e-4d3a-9a55-3c1d8f0f2a11"`
	PreviousFee          float64 `json:"previous_fee" gorm:"not null" example:"10000"`
	NewFee               float64 `json:"new_fee" gorm:"not null" example:"10800"`
	AdjustmentPercentage float64 `json:"adjustment_percentage" gorm:"not null" example:"8"`
	AdjustmentDate       string  `json:"adjustment_date" gorm:"type:varchar(10);not null;index" example:"2024-03-01"`
	Notes                *string `json:"notes" gorm:"type:text" example:"Ajuste trimestral"`
}

// FeeAdjustmentRequest represents an apply or edit fee adjustment request
// @Description Fee adjustment request information
type FeeAdjustmentRequest struct {
	NewFee        float64 `json:"new_fee" example:"10800"`
	EffectiveDate string  `json:"effective_date" example:"2024-03-01"`
	Notes         *string `json:"notes,omitempty" example:"Ajuste trimestral"`
}
