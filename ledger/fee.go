package ledger

import (
	"strings"

	"github.com/fgiusti90/psico-app/model"
	"github.com/google/uuid"
)

// ChangeKind names what a Change does to the adjustment row.
type ChangeKind string

const (
	ChangeApply  ChangeKind = "apply"
	ChangeEdit   ChangeKind = "edit"
	ChangeDelete ChangeKind = "delete"
)

// Change is the full outcome of one fee ledger operation. The persistence layer
// must write the adjustment row and, when FeeChanged is set, the treatment's
// current fee in a single transaction.
type Change struct {
	Kind ChangeKind `json:"kind"`
	// Adjustment is the inserted, updated or deleted row.
	Adjustment model.FeeAdjustment `json:"adjustment"`
	// Treatment is the owning treatment as it must look after the change.
	Treatment  model.Treatment `json:"treatment"`
	FeeChanged bool            `json:"fee_changed"`
	// PreviousCurrentFee is the treatment's current fee before the change.
	PreviousCurrentFee float64 `json:"previous_current_fee"`
	// Backdated is set when an applied adjustment is dated before the existing
	// latest one. The current fee is still moved to the new fee.
	Backdated bool `json:"backdated"`
}

// AdjustmentInput carries the user supplied values of an apply or edit.
type AdjustmentInput struct {
	NewFee        float64
	EffectiveDate string
	Notes         *string
}

func (in AdjustmentInput) validate() (string, error) {
	if in.NewFee <= 0 {
		return "", invalid("new_fee", "must be greater than zero")
	}
	t, err := ParseDate(in.EffectiveDate)
	if err != nil {
		return "", invalid("effective_date", "must be a valid YYYY-MM-DD date")
	}
	return t.Format(model.DateLayout), nil
}

func cleanNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ApplyAdjustment records a new fee for a treatment. The treatment's current fee
// is the base of the percentage and is replaced by the new fee.
func ApplyAdjustment(snap Snapshot, treatmentID string, in AdjustmentInput) (Change, error) {
	date, err := in.validate()
	if err != nil {
		return Change{}, err
	}
	treatment, err := snap.Treatment(treatmentID)
	if err != nil {
		return Change{}, err
	}
	previousFee := treatment.CurrentFee
	pct, err := AdjustmentPercentage(previousFee, in.NewFee)
	if err != nil {
		return Change{}, err
	}

	backdated := false
	if latest, ok := LatestAdjustment(snap.TreatmentAdjustments(treatmentID)); ok && date < latest.AdjustmentDate {
		backdated = true
	}

	adj := model.FeeAdjustment{
		Model:                model.Model{ID: uuid.NewString(), UserID: treatment.UserID},
		TreatmentID:          treatmentID,
		PreviousFee:          previousFee,
		NewFee:               in.NewFee,
		AdjustmentPercentage: pct,
		AdjustmentDate:       date,
		Notes:                cleanNotes(in.Notes),
	}
	treatment.CurrentFee = in.NewFee

	return Change{
		Kind:               ChangeApply,
		Adjustment:         adj,
		Treatment:          treatment,
		FeeChanged:         true,
		PreviousCurrentFee: previousFee,
		Backdated:          backdated,
	}, nil
}

// EditAdjustment changes the fee and effective date of an existing adjustment.
// The percentage is recomputed against the adjustment's own previous fee, which
// never moves. Latest is decided on the history as it looks after the edit:
// when the edited row is the latest, the treatment takes its new fee; when the
// edit moved the former latest behind a sibling, the treatment follows that
// sibling; otherwise the current fee stays as it is.
func EditAdjustment(snap Snapshot, adjustmentID string, in AdjustmentInput) (Change, error) {
	date, err := in.validate()
	if err != nil {
		return Change{}, err
	}
	adj, err := snap.Adjustment(adjustmentID)
	if err != nil {
		return Change{}, err
	}
	treatment, err := snap.Treatment(adj.TreatmentID)
	if err != nil {
		return Change{}, err
	}
	pct, err := AdjustmentPercentage(adj.PreviousFee, in.NewFee)
	if err != nil {
		return Change{}, err
	}

	history := snap.TreatmentAdjustments(adj.TreatmentID)
	wasLatest := len(history) > 0 && history[0].ID == adj.ID

	adj.NewFee = in.NewFee
	adj.AdjustmentDate = date
	adj.AdjustmentPercentage = pct
	if in.Notes != nil {
		adj.Notes = cleanNotes(in.Notes)
	}
	for i := range history {
		if history[i].ID == adj.ID {
			history[i] = adj
		}
	}
	latest, _ := LatestAdjustment(history)

	change := Change{
		Kind:               ChangeEdit,
		Adjustment:         adj,
		PreviousCurrentFee: treatment.CurrentFee,
	}
	switch {
	case latest.ID == adj.ID:
		treatment.CurrentFee = adj.NewFee
		change.FeeChanged = true
	case wasLatest:
		treatment.CurrentFee = latest.NewFee
		change.FeeChanged = true
	}
	change.Treatment = treatment
	return change, nil
}

// DeleteAdjustment removes an adjustment. Deleting the latest one reverts the
// treatment to the next latest adjustment's fee, or to its initial fee when no
// adjustment remains.
func DeleteAdjustment(snap Snapshot, adjustmentID string) (Change, error) {
	adj, err := snap.Adjustment(adjustmentID)
	if err != nil {
		return Change{}, err
	}
	treatment, err := snap.Treatment(adj.TreatmentID)
	if err != nil {
		return Change{}, err
	}

	change := Change{
		Kind:               ChangeDelete,
		Adjustment:         adj,
		PreviousCurrentFee: treatment.CurrentFee,
	}
	history := snap.TreatmentAdjustments(adj.TreatmentID)
	if history[0].ID == adj.ID {
		if len(history) > 1 {
			treatment.CurrentFee = history[1].NewFee
		} else {
			treatment.CurrentFee = treatment.InitialFee
		}
		change.FeeChanged = true
	}
	change.Treatment = treatment
	return change, nil
}
