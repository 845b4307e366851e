package store

import (
	"context"
	"errors"
	"testing"

	"github.com/fgiusti90/psico-app/ledger"
	"github.com/fgiusti90/psico-app/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const owner = "practitioner-1"

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, Migrate(db))
	return New(db, zerolog.Nop()), db
}

func seedTreatment(t *testing.T, s *Store, ownerID string, fee float64) (model.Patient, model.Treatment) {
	t.Helper()
	ctx := context.Background()
	p := model.Patient{Model: model.Model{UserID: ownerID}, Name: "Lucía", Status: model.PatientActive}
	require.NoError(t, s.CreatePatient(ctx, &p))
	tr := model.Treatment{
		Model:      model.Model{UserID: ownerID},
		PatientID:  p.ID,
		StartDate:  "2024-01-01",
		InitialFee: fee,
		IsActive:   true,
	}
	require.NoError(t, s.CreateTreatment(ctx, &tr))
	return p, tr
}

func commit(t *testing.T, s *Store, op func(ledger.Snapshot) (ledger.Change, error)) ledger.Change {
	t.Helper()
	snap, err := s.LoadSnapshot(context.Background(), owner)
	require.NoError(t, err)
	change, err := op(snap)
	require.NoError(t, err)
	require.NoError(t, s.CommitChange(context.Background(), change))
	return change
}

func currentFee(t *testing.T, s *Store, id string) float64 {
	t.Helper()
	tr, err := s.GetTreatment(context.Background(), owner, id)
	require.NoError(t, err)
	return tr.CurrentFee
}

func TestCommitChange_FeeHistoryRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	_, tr := seedTreatment(t, s, owner, 10000)
	assert.Equal(t, 10000.0, tr.CurrentFee)

	first := commit(t, s, func(snap ledger.Snapshot) (ledger.Change, error) {
		return ledger.ApplyAdjustment(snap, tr.ID, ledger.AdjustmentInput{NewFee: 10800, EffectiveDate: "2024-03-01"})
	})
	assert.Equal(t, 10800.0, currentFee(t, s, tr.ID))

	second := commit(t, s, func(snap ledger.Snapshot) (ledger.Change, error) {
		return ledger.ApplyAdjustment(snap, tr.ID, ledger.AdjustmentInput{NewFee: 11664, EffectiveDate: "2024-06-01"})
	})
	assert.Equal(t, 11664.0, currentFee(t, s, tr.ID))

	history, err := s.ListAdjustments(ctx, owner, tr.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.Adjustment.ID, history[0].ID)
	assert.Equal(t, 8.0, history[0].AdjustmentPercentage)

	// Editing the earlier adjustment keeps the current fee.
	commit(t, s, func(snap ledger.Snapshot) (ledger.Change, error) {
		return ledger.EditAdjustment(snap, first.Adjustment.ID, ledger.AdjustmentInput{NewFee: 11000, EffectiveDate: "2024-03-01"})
	})
	assert.Equal(t, 11664.0, currentFee(t, s, tr.ID))
	history, err = s.ListAdjustments(ctx, owner, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, 11000.0, history[1].NewFee)
	assert.Equal(t, 10.0, history[1].AdjustmentPercentage)

	commit(t, s, func(snap ledger.Snapshot) (ledger.Change, error) {
		return ledger.DeleteAdjustment(snap, second.Adjustment.ID)
	})
	assert.Equal(t, 11000.0, currentFee(t, s, tr.ID))

	commit(t, s, func(snap ledger.Snapshot) (ledger.Change, error) {
		return ledger.DeleteAdjustment(snap, first.Adjustment.ID)
	})
	assert.Equal(t, 10000.0, currentFee(t, s, tr.ID))

	history, err = s.ListAdjustments(ctx, owner, tr.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestCommitChange_RollsBackOnMissingTreatment(t *testing.T) {
	s, db := newTestStore(t)
	_, tr := seedTreatment(t, s, owner, 10000)

	snap, err := s.LoadSnapshot(context.Background(), owner)
	require.NoError(t, err)
	change, err := ledger.ApplyAdjustment(snap, tr.ID, ledger.AdjustmentInput{NewFee: 12000, EffectiveDate: "2024-02-01"})
	require.NoError(t, err)
	change.Treatment.ID = "gone"

	err = s.CommitChange(context.Background(), change)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ledger.ErrNotFound))

	var count int64
	require.NoError(t, db.Model(&model.FeeAdjustment{}).Count(&count).Error)
	assert.Zero(t, count, "adjustment insert must be rolled back")
	assert.Equal(t, 10000.0, currentFee(t, s, tr.ID))
}

func TestCommitChange_EditMissingAdjustment(t *testing.T) {
	s, _ := newTestStore(t)
	_, tr := seedTreatment(t, s, owner, 10000)

	err := s.CommitChange(context.Background(), ledger.Change{
		Kind:       ledger.ChangeEdit,
		Adjustment: model.FeeAdjustment{Model: model.Model{ID: "nope", UserID: owner}, TreatmentID: tr.ID},
	})
	var nf *ledger.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "nope", nf.ID)
}

func TestLoadSnapshot_ScopedByOwner(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	seedTreatment(t, s, owner, 10000)
	seedTreatment(t, s, "someone-else", 9000)
	require.NoError(t, s.UpsertInflation(ctx, &model.InflationRecord{UserID: "someone-else", Month: "2024-01-01", Percentage: 4}))

	snap, err := s.LoadSnapshot(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, snap.Patients, 1)
	require.Len(t, snap.Treatments, 1)
	assert.Equal(t, 10000.0, snap.Treatments[0].InitialFee)
	assert.Empty(t, snap.InflationRecords)

	_, err = s.GetTreatment(ctx, "someone-else", snap.Treatments[0].ID)
	assert.True(t, errors.Is(err, ledger.ErrNotFound))
}

func TestDeletePatient_Cascades(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()
	p, tr := seedTreatment(t, s, owner, 10000)
	require.NoError(t, s.CreateSession(ctx, &model.Session{
		Model: model.Model{UserID: owner}, TreatmentID: tr.ID, SessionDate: "2024-02-02", SessionType: model.SessionRegular,
	}))
	commit(t, s, func(snap ledger.Snapshot) (ledger.Change, error) {
		return ledger.ApplyAdjustment(snap, tr.ID, ledger.AdjustmentInput{NewFee: 11000, EffectiveDate: "2024-03-01"})
	})

	require.NoError(t, s.DeletePatient(ctx, owner, p.ID))

	for _, m := range []interface{}{&model.Patient{}, &model.Treatment{}, &model.Session{}, &model.FeeAdjustment{}} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Zero(t, count)
	}
	assert.True(t, errors.Is(s.DeletePatient(ctx, owner, p.ID), ledger.ErrNotFound))
}

func TestSessions_DefaultFeeAndTogglePaid(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	_, tr := seedTreatment(t, s, owner, 10000)

	sess := model.Session{Model: model.Model{UserID: owner}, TreatmentID: tr.ID, SessionDate: "2024-02-02", SessionType: model.SessionRegular}
	require.NoError(t, s.CreateSession(ctx, &sess))
	assert.Equal(t, 10000.0, sess.FeeCharged)

	// A later fee adjustment leaves the recorded session alone.
	commit(t, s, func(snap ledger.Snapshot) (ledger.Change, error) {
		return ledger.ApplyAdjustment(snap, tr.ID, ledger.AdjustmentInput{NewFee: 12000, EffectiveDate: "2024-03-01"})
	})
	stored, err := s.GetSession(ctx, owner, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, stored.FeeCharged)

	toggled, err := s.TogglePaid(ctx, owner, sess.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsPaid)
	toggled, err = s.TogglePaid(ctx, owner, sess.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsPaid)

	err = s.CreateSession(ctx, &model.Session{Model: model.Model{UserID: owner}, TreatmentID: "missing", SessionDate: "2024-02-02"})
	assert.True(t, errors.Is(err, ledger.ErrNotFound))
}

func TestSaveTreatment_KeepsFees(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	_, tr := seedTreatment(t, s, owner, 10000)

	tr.InitialFee = 1
	tr.CurrentFee = 1
	tr.IsActive = false
	require.NoError(t, s.SaveTreatment(ctx, &tr))

	stored, err := s.GetTreatment(ctx, owner, tr.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Equal(t, 10000.0, stored.InitialFee)
	assert.Equal(t, 10000.0, stored.CurrentFee)
}

func TestUpsertInflation_ReplacesMonth(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first := model.InflationRecord{UserID: owner, Month: "2024-01-01", Percentage: 5}
	require.NoError(t, s.UpsertInflation(ctx, &first))
	second := model.InflationRecord{UserID: owner, Month: "2024-01-01", Percentage: 6.5}
	require.NoError(t, s.UpsertInflation(ctx, &second))
	assert.Equal(t, first.ID, second.ID)
	require.NoError(t, s.UpsertInflation(ctx, &model.InflationRecord{UserID: owner, Month: "2024-02-01", Percentage: 3}))

	records, err := s.ListInflation(ctx, owner)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-02-01", records[0].Month)
	assert.Equal(t, 6.5, records[1].Percentage)

	require.NoError(t, s.DeleteInflation(ctx, owner, first.ID))
	assert.True(t, errors.Is(s.DeleteInflation(ctx, owner, first.ID), ledger.ErrNotFound))
}
