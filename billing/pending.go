package billing

import (
	"sort"

	"github.com/fgiusti90/psico-app/ledger"
	"github.com/fgiusti90/psico-app/model"
	"github.com/shopspring/decimal"
)

// PendingSessions returns the unpaid sessions, oldest first.
func PendingSessions(sessions []model.Session) []model.Session {
	out := []model.Session{}
	for _, s := range sessions {
		if !s.IsPaid {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SessionDate < out[j].SessionDate })
	return out
}

// PatientDebt groups the unpaid sessions of one patient.
type PatientDebt struct {
	Patient   model.Patient   `json:"patient"`
	Treatment model.Treatment `json:"treatment"`
	Sessions  []model.Session `json:"sessions"`
	Total     float64         `json:"total"`
}

// PendingByPatient groups unpaid sessions by the patient of their treatment,
// largest debt first. Sessions whose treatment or patient is not in the
// snapshot are left out.
func PendingByPatient(snap ledger.Snapshot) []PatientDebt {
	groups := map[string]*PatientDebt{}
	totals := map[string]decimal.Decimal{}
	var order []string

	for _, s := range PendingSessions(snap.Sessions) {
		treatment, err := snap.Treatment(s.TreatmentID)
		if err != nil {
			continue
		}
		patient, ok := snap.Patient(treatment.PatientID)
		if !ok {
			continue
		}
		g, exists := groups[patient.ID]
		if !exists {
			g = &PatientDebt{Patient: patient, Treatment: treatment}
			groups[patient.ID] = g
			order = append(order, patient.ID)
		}
		g.Sessions = append(g.Sessions, s)
		totals[patient.ID] = totals[patient.ID].Add(decimal.NewFromFloat(s.FeeCharged))
	}

	out := make([]PatientDebt, 0, len(order))
	for _, id := range order {
		g := groups[id]
		g.Total = totals[id].InexactFloat64()
		out = append(out, *g)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

// PatientTreatment pairs an active patient with their active treatment.
type PatientTreatment struct {
	Patient   model.Patient   `json:"patient"`
	Treatment model.Treatment `json:"treatment"`
}

// ActivePatientsWithTreatment lists the active patients that have an active treatment.
func ActivePatientsWithTreatment(snap ledger.Snapshot) []PatientTreatment {
	out := []PatientTreatment{}
	for _, p := range snap.Patients {
		if p.Status != model.PatientActive {
			continue
		}
		for _, t := range snap.Treatments {
			if t.PatientID == p.ID && t.IsActive {
				out = append(out, PatientTreatment{Patient: p, Treatment: t})
				break
			}
		}
	}
	return out
}
