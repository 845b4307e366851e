package endpoint

import (
	"strings"

	"github.com/fgiusti90/psico-app/ledger"
	"github.com/fgiusti90/psico-app/model"
	"github.com/fgiusti90/psico-app/util"
)

func invalid(field, msg string) error {
	return &ledger.ValidationError{Field: field, Msg: msg}
}

func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func normalizeDate(field string, s string) (string, error) {
	t, err := ledger.ParseDate(s)
	if err != nil {
		return "", invalid(field, "must be a valid YYYY-MM-DD date")
	}
	return t.Format(model.DateLayout), nil
}

// applyPatientRequest copies the set fields of req onto p. On creation the
// name is required and the status defaults to active.
func applyPatientRequest(req model.PatientRequest, p *model.Patient, creating bool) error {
	if req.Name != nil {
		p.Name = util.NormalizeName(*req.Name)
	}
	if (creating || req.Name != nil) && p.Name == "" {
		return invalid("name", "is required")
	}
	if req.Contact != nil {
		p.Contact = optionalText(req.Contact)
	}
	if req.FatherName != nil {
		p.FatherName = optionalText(req.FatherName)
	}
	if req.MotherName != nil {
		p.MotherName = optionalText(req.MotherName)
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if creating && p.Status == "" {
		p.Status = model.PatientActive
	}
	if !p.Status.Valid() {
		return invalid("status", "must be active or inactive")
	}
	return nil
}

// applyTreatmentRequest copies the set fields of req onto t. The initial fee
// can only be set on creation.
func applyTreatmentRequest(req model.TreatmentRequest, t *model.Treatment, creating bool) error {
	if req.PatientID != "" {
		t.PatientID = req.PatientID
	}
	if t.PatientID == "" {
		return invalid("patient_id", "is required")
	}
	if req.StartDate != nil || creating {
		if req.StartDate == nil {
			return invalid("start_date", "is required")
		}
		date, err := normalizeDate("start_date", *req.StartDate)
		if err != nil {
			return err
		}
		t.StartDate = date
	}
	if req.EndDate != nil {
		if strings.TrimSpace(*req.EndDate) == "" {
			t.EndDate = nil
		} else {
			date, err := normalizeDate("end_date", *req.EndDate)
			if err != nil {
				return err
			}
			t.EndDate = &date
		}
	}
	if t.EndDate != nil && *t.EndDate < t.StartDate {
		return invalid("end_date", "must not be before start_date")
	}
	if creating {
		if req.InitialFee == nil || *req.InitialFee <= 0 {
			return invalid("initial_fee", "must be greater than zero")
		}
		t.InitialFee = *req.InitialFee
		t.IsActive = true
	} else if req.InitialFee != nil && *req.InitialFee != t.InitialFee {
		return invalid("initial_fee", "cannot be changed once the treatment exists")
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	return nil
}

// applySessionRequest copies the set fields of req onto s. A missing fee on
// creation is left at zero so the store charges the treatment's current fee.
func applySessionRequest(req model.SessionRequest, s *model.Session, creating bool) error {
	if req.TreatmentID != "" {
		s.TreatmentID = req.TreatmentID
	}
	if s.TreatmentID == "" {
		return invalid("treatment_id", "is required")
	}
	if req.SessionDate != nil || creating {
		if req.SessionDate == nil {
			return invalid("session_date", "is required")
		}
		date, err := normalizeDate("session_date", *req.SessionDate)
		if err != nil {
			return err
		}
		s.SessionDate = date
	}
	if req.SessionType != nil {
		s.SessionType = *req.SessionType
	}
	if creating && s.SessionType == "" {
		s.SessionType = model.SessionRegular
	}
	if !s.SessionType.Valid() {
		return invalid("session_type", "must be session, parent_orientation or parent_interview")
	}
	if req.FeeCharged != nil {
		if *req.FeeCharged < 0 || (!creating && *req.FeeCharged == 0) {
			return invalid("fee_charged", "must be greater than zero")
		}
		s.FeeCharged = *req.FeeCharged
	}
	if req.IsPaid != nil {
		s.IsPaid = *req.IsPaid
	}
	return nil
}
