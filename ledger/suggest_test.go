package ledger

import (
	"errors"
	"testing"

	"github.com/fgiusti90/psico-app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestNextFee_NoAdjustmentsUsesStartDate(t *testing.T) {
	treatment := testTreatment("t1", 10000, 10000)
	records := []model.InflationRecord{inflation("2024-01-01", 5), inflation("2024-02-01", 3)}

	s, err := SuggestNextFee(treatment, nil, records)
	require.NoError(t, err)
	assert.Equal(t, "2023-12-15", s.ReferenceDate)
	assert.InDelta(t, 8.0, s.AccumulatedInflation, 1e-9)
	assert.Equal(t, 10800.0, s.SuggestedFee)
	assert.InDelta(t, 8.0, s.SuggestedPercentage, 1e-9)
	assert.Equal(t, StatusReview, s.Status)
}

func TestSuggestNextFee_UsesLatestAdjustmentOfTreatment(t *testing.T) {
	treatment := testTreatment("t1", 10000, 10800)
	adjustments := []model.FeeAdjustment{
		testAdjustment("a1", "t1", "2024-02-01", 10000, 10800),
		testAdjustment("other", "t2", "2024-05-01", 10000, 20000),
	}
	records := []model.InflationRecord{
		inflation("2024-01-01", 5),
		inflation("2024-02-01", 3),
		inflation("2024-03-01", 4),
	}

	s, err := SuggestNextFee(treatment, adjustments, records)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", s.ReferenceDate)
	assert.InDelta(t, 7.0, s.AccumulatedInflation, 1e-9)
	assert.Equal(t, 11556.0, s.SuggestedFee)

	// pure: inputs are unchanged
	assert.Equal(t, 10800.0, treatment.CurrentFee)
	assert.Equal(t, "a1", adjustments[0].ID)
}

func TestSuggestNextFee_RoundsAndHandlesDeflation(t *testing.T) {
	treatment := testTreatment("t1", 9999, 9999)
	s, err := SuggestNextFee(treatment, nil, []model.InflationRecord{inflation("2024-01-01", 2.5)})
	require.NoError(t, err)
	// 9999 * 1.025 = 10248.975
	assert.Equal(t, 10249.0, s.SuggestedFee)

	s, err = SuggestNextFee(treatment, nil, []model.InflationRecord{inflation("2024-01-01", -1)})
	require.NoError(t, err)
	// 9999 * 0.99 = 9899.01
	assert.Equal(t, 9899.0, s.SuggestedFee)
	assert.Equal(t, StatusOK, s.Status)

	s, err = SuggestNextFee(treatment, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 9999.0, s.SuggestedFee)
	assert.Equal(t, 0.0, s.AccumulatedInflation)
}

func TestSuggestNextFee_InvalidReference(t *testing.T) {
	treatment := testTreatment("t1", 10000, 10000)
	treatment.StartDate = ""
	_, err := SuggestNextFee(treatment, nil, nil)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusOK, StatusFor(-3))
	assert.Equal(t, StatusOK, StatusFor(5))
	assert.Equal(t, StatusReview, StatusFor(5.01))
	assert.Equal(t, StatusReview, StatusFor(15))
	assert.Equal(t, StatusAdjust, StatusFor(15.5))
}

func TestSuggestFees_Board(t *testing.T) {
	ana := model.Patient{Model: model.Model{ID: "p-ana"}, Name: "Ana Torres", Status: model.PatientActive}
	bruno := model.Patient{Model: model.Model{ID: "p-bruno"}, Name: "Bruno Díaz", Status: model.PatientActive}
	carla := model.Patient{Model: model.Model{ID: "p-carla"}, Name: "Carla Ruiz", Status: model.PatientActive}

	tAna := testTreatment("t-ana", 10000, 10000)
	tAna.PatientID = ana.ID
	tAna.StartDate = "2024-01-01"
	tBruno := testTreatment("t-bruno", 8000, 8400)
	tBruno.PatientID = bruno.ID
	tCarla := testTreatment("t-carla", 9000, 9000)
	tCarla.PatientID = carla.ID
	tCarla.IsActive = false

	snap := Snapshot{
		Patients:       []model.Patient{ana, bruno, carla},
		Treatments:     []model.Treatment{tAna, tBruno, tCarla},
		FeeAdjustments: []model.FeeAdjustment{testAdjustment("a1", "t-bruno", "2024-03-01", 8000, 8400)},
		InflationRecords: []model.InflationRecord{
			inflation("2024-01-01", 10),
			inflation("2024-02-01", 8),
			inflation("2024-03-01", 4),
		},
	}

	board := SuggestFees(snap, "")
	require.Len(t, board.Suggestions, 2)
	assert.Equal(t, "Ana Torres", board.Suggestions[0].PatientName)
	assert.InDelta(t, 22.0, board.Suggestions[0].AccumulatedInflation, 1e-9)
	assert.Equal(t, 12200.0, board.Suggestions[0].SuggestedFee)
	assert.Equal(t, StatusAdjust, board.Suggestions[0].Status)

	assert.Equal(t, "Bruno Díaz", board.Suggestions[1].PatientName)
	assert.Equal(t, "2024-03-01", board.Suggestions[1].ReferenceDate)
	assert.InDelta(t, 4.0, board.Suggestions[1].AccumulatedInflation, 1e-9)
	assert.Len(t, board.Suggestions[1].Adjustments, 1)

	assert.Equal(t, 1, board.Summary[StatusAdjust])
	assert.Equal(t, 1, board.Summary[StatusOK])
	assert.Equal(t, 0, board.Summary[StatusReview])

	filtered := SuggestFees(snap, "  bru ")
	require.Len(t, filtered.Suggestions, 1)
	assert.Equal(t, "t-bruno", filtered.Suggestions[0].TreatmentID)

	assert.Empty(t, SuggestFees(snap, "nobody").Suggestions)
}
