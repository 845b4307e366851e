package ledger

import (
	"sort"

	"github.com/fgiusti90/psico-app/model"
)

// Snapshot is the in-memory view of one practitioner's records that every
// ledger operation works on. The ledger never keeps state between calls.
type Snapshot struct {
	Patients         []model.Patient
	Treatments       []model.Treatment
	Sessions         []model.Session
	FeeAdjustments   []model.FeeAdjustment
	InflationRecords []model.InflationRecord
}

// Treatment looks up a treatment by ID.
func (s Snapshot) Treatment(id string) (model.Treatment, error) {
	for _, t := range s.Treatments {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Treatment{}, notFound("treatment", id)
}

// Adjustment looks up a fee adjustment by ID.
func (s Snapshot) Adjustment(id string) (model.FeeAdjustment, error) {
	for _, a := range s.FeeAdjustments {
		if a.ID == id {
			return a, nil
		}
	}
	return model.FeeAdjustment{}, notFound("fee adjustment", id)
}

// Patient looks up a patient by ID.
func (s Snapshot) Patient(id string) (model.Patient, bool) {
	for _, p := range s.Patients {
		if p.ID == id {
			return p, true
		}
	}
	return model.Patient{}, false
}

// TreatmentAdjustments returns the adjustments of one treatment, latest first.
func (s Snapshot) TreatmentAdjustments(treatmentID string) []model.FeeAdjustment {
	var out []model.FeeAdjustment
	for _, a := range s.FeeAdjustments {
		if a.TreatmentID == treatmentID {
			out = append(out, a)
		}
	}
	SortLatestFirst(out)
	return out
}

// SortLatestFirst orders adjustments by adjustment date descending. Ties on the
// date are broken by creation time, then by ID, both descending, so the most
// recently recorded adjustment wins.
func SortLatestFirst(adjustments []model.FeeAdjustment) {
	sort.SliceStable(adjustments, func(i, j int) bool {
		return laterThan(adjustments[i], adjustments[j])
	})
}

// LatestAdjustment returns the latest adjustment of the given slice without reordering it.
func LatestAdjustment(adjustments []model.FeeAdjustment) (model.FeeAdjustment, bool) {
	if len(adjustments) == 0 {
		return model.FeeAdjustment{}, false
	}
	latest := adjustments[0]
	for _, a := range adjustments[1:] {
		if laterThan(a, latest) {
			latest = a
		}
	}
	return latest, true
}

// Dates are ISO formatted, so lexical order is chronological order.
func laterThan(a, b model.FeeAdjustment) bool {
	if a.AdjustmentDate != b.AdjustmentDate {
		return a.AdjustmentDate > b.AdjustmentDate
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
