package model

// PatientStatus is either active or inactive.
type PatientStatus string

const (
	PatientActive   PatientStatus = "active"
	PatientInactive PatientStatus = "inactive"
)

// Valid reports whether s is a known status.
func (s PatientStatus) Valid() bool {
	return s == PatientActive || s == PatientInactive
}

// Patient represents a patient of the practice
// @Description Patient information
type Patient struct {
	Model
	Name       string        `json:"name" gorm:"type:varchar(191);not null;index" example:"Lucía Fernández"`
	Contact    *string       `json:"contact" gorm:"type:varchar(191)" example:"11 5555-0101"`
	FatherName *string       `json:"father_name" gorm:"type:varchar(191)" example:"Martín Fernández"`
	MotherName *string       `json:"mother_name" gorm:"type:varchar(191)" example:"Paula Gómez"`
	Status     PatientStatus `json:"status" gorm:"type:varchar(16);not null;default:active" example:"active"`
}

// PatientRequest represents a patient create or update request
// @Description Patient request information
type PatientRequest struct {
	Name       *string        `json:"name" example:"Lucía Fernández"`
	Contact    *string        `json:"contact,omitempty" example:"11 5555-0101"`
	FatherName *string        `json:"father_name,omitempty" example:"Martín Fernández"`
	MotherName *string        `json:"mother_name,omitempty" example:"Paula Gómez"`
	Status     *PatientStatus `json:"status,omitempty" example:"active"`
}
