package ledger

import (
	"sort"
	"strings"

	"github.com/fgiusti90/psico-app/model"
)

// FeeStatus grades how far a fee has fallen behind inflation.
type FeeStatus string

const (
	StatusOK     FeeStatus = "ok"
	StatusReview FeeStatus = "review"
	StatusAdjust FeeStatus = "adjust"
)

const (
	reviewThreshold = 5.0
	adjustThreshold = 15.0
)

// StatusFor maps an accumulated inflation percentage onto a FeeStatus.
func StatusFor(accumulated float64) FeeStatus {
	switch {
	case accumulated <= reviewThreshold:
		return StatusOK
	case accumulated <= adjustThreshold:
		return StatusReview
	default:
		return StatusAdjust
	}
}

// Suggestion is the inflation based fee projection for one treatment.
type Suggestion struct {
	TreatmentID          string    `json:"treatment_id"`
	CurrentFee           float64   `json:"current_fee"`
	ReferenceDate        string    `json:"last_adjustment_date"`
	AccumulatedInflation float64   `json:"accumulated_inflation"`
	SuggestedFee         float64   `json:"suggested_fee"`
	SuggestedPercentage  float64   `json:"suggested_percentage"`
	Status               FeeStatus `json:"status"`
}

// SuggestNextFee projects a new fee for treatment from the inflation recorded
// since its latest adjustment, or since its start date when it has none.
// Adjustments of other treatments are ignored. Nothing passed in is modified.
func SuggestNextFee(treatment model.Treatment, adjustments []model.FeeAdjustment, records []model.InflationRecord) (Suggestion, error) {
	var own []model.FeeAdjustment
	for _, a := range adjustments {
		if a.TreatmentID == treatment.ID {
			own = append(own, a)
		}
	}

	reference := treatment.StartDate
	if latest, ok := LatestAdjustment(own); ok {
		reference = latest.AdjustmentDate
	}
	since, err := ParseDate(reference)
	if err != nil {
		return Suggestion{}, invalid("reference_date", "treatment has no valid start or adjustment date")
	}

	accumulated := AccumulateSince(records, since)
	return Suggestion{
		TreatmentID:          treatment.ID,
		CurrentFee:           treatment.CurrentFee,
		ReferenceDate:        reference,
		AccumulatedInflation: accumulated,
		SuggestedFee:         projectFee(treatment.CurrentFee, accumulated),
		SuggestedPercentage:  accumulated,
		Status:               StatusFor(accumulated),
	}, nil
}

// FeeSuggestion is a board row: a suggestion with its patient and history.
type FeeSuggestion struct {
	Suggestion
	PatientID   string                `json:"patient_id"`
	PatientName string                `json:"patient_name"`
	InitialFee  float64               `json:"initial_fee"`
	Adjustments []model.FeeAdjustment `json:"adjustments"`
}

// SuggestionBoard is the list of suggestions and how many fall in each status.
type SuggestionBoard struct {
	Suggestions []FeeSuggestion   `json:"suggestions"`
	Summary     map[FeeStatus]int `json:"summary"`
}

// SuggestFees builds the board for every active treatment in the snapshot,
// most behind first. A non-empty search keeps only patients whose name
// contains it, ignoring case. Treatments with unreadable dates are skipped.
func SuggestFees(snap Snapshot, search string) SuggestionBoard {
	search = strings.ToLower(strings.TrimSpace(search))
	board := SuggestionBoard{
		Suggestions: []FeeSuggestion{},
		Summary:     map[FeeStatus]int{StatusOK: 0, StatusReview: 0, StatusAdjust: 0},
	}

	for _, t := range snap.Treatments {
		if !t.IsActive {
			continue
		}
		patient, _ := snap.Patient(t.PatientID)
		if search != "" && !strings.Contains(strings.ToLower(patient.Name), search) {
			continue
		}
		history := snap.TreatmentAdjustments(t.ID)
		s, err := SuggestNextFee(t, history, snap.InflationRecords)
		if err != nil {
			continue
		}
		board.Suggestions = append(board.Suggestions, FeeSuggestion{
			Suggestion:  s,
			PatientID:   t.PatientID,
			PatientName: patient.Name,
			InitialFee:  t.InitialFee,
			Adjustments: history,
		})
		board.Summary[s.Status]++
	}

	sort.SliceStable(board.Suggestions, func(i, j int) bool {
		a, b := board.Suggestions[i], board.Suggestions[j]
		if a.AccumulatedInflation != b.AccumulatedInflation {
			return a.AccumulatedInflation > b.AccumulatedInflation
		}
		return a.PatientName < b.PatientName
	})
	return board
}
