package model

// SessionType classifies a billable session.
type SessionType string

const (
	SessionRegular           SessionType = "session"
	SessionParentOrientation SessionType = "parent_orientation"
	SessionParentInterview   SessionType = "parent_interview"
)

// Valid reports whether t is a known session type.
func (t SessionType) Valid() bool {
	switch t {
	case SessionRegular, SessionParentOrientation, SessionParentInterview:
		return true
	}
	return false
}

// Session represents a billable session of a treatment.
// FeeCharged is a snapshot taken when the session is recorded and is never
// rewritten by later fee adjustments.
// @Description Session information
type Session struct {
	Model
	TreatmentID string      `json:"treatment_id" gorm:"type:varchar(36);not null;index" example:"0b6c1a54-3f7e-4d3a-9a55-3c1d8f0f2a11"`
	SessionDate string      `json:"session_date" gorm:"type:varchar(10);not null;index" example:"2024-03-12"`
	SessionType SessionType `json:"session_type" gorm:"type:varchar(32);not null;default:session" example:"session"`
	FeeCharged  float64     `json:"fee_charged" gorm:"not null" example:"10800"`
	IsPaid      bool        `json:"is_paid" gorm:"not null;default:false" example:"false"`
}

// SessionRequest represents a session create or update request
// @Description Session request information
type SessionRequest struct {
	TreatmentID string       `json:"treatment_id" example:"0b6c1a54-3f7e-4d3a-9a55-3c1d8f0f2a11"`
	SessionDate *string      `json:"session_date" example:"2024-03-12"`
	SessionType *SessionType `json:"session_type,omitempty" example:"session"`
	FeeCharged  *float64     `json:"fee_charged,omitempty" example:"10800"`
	IsPaid      *bool        `json:"is_paid,omitempty" example:"false"`
}
