package store

import (
	"context"
	"fmt"

	"github.com/fgiusti90/psico-app/ledger"
	"github.com/fgiusti90/psico-app/model"
)

// ListSessions returns the owner's sessions, newest first. A non-empty
// treatmentID narrows the list to that treatment.
func (s *Store) ListSessions(ctx context.Context, ownerID, treatmentID string) ([]model.Session, error) {
	q := s.owned(ctx, ownerID)
	if treatmentID != "" {
		q = q.Where("treatment_id = ?", treatmentID)
	}
	var sessions []model.Session
	if err := q.Order("session_date DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *Store) GetSession(ctx context.Context, ownerID, id string) (model.Session, error) {
	var sess model.Session
	if err := s.owned(ctx, ownerID).Where("id = ?", id).First(&sess).Error; err != nil {
		return model.Session{}, mapErr("session", id, err)
	}
	return sess, nil
}

// CreateSession inserts a session. A zero fee is replaced by the treatment's
// current fee at the time of recording.
func (s *Store) CreateSession(ctx context.Context, sess *model.Session) error {
	t, err := s.GetTreatment(ctx, sess.UserID, sess.TreatmentID)
	if err != nil {
		return err
	}
	if sess.FeeCharged == 0 {
		sess.FeeCharged = t.CurrentFee
	}
	if err := s.db.WithContext(ctx).Create(sess).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *Store) SaveSession(ctx context.Context, sess *model.Session) error {
	if _, err := s.GetTreatment(ctx, sess.UserID, sess.TreatmentID); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&model.Session{}).
		Where("id = ? AND user_id = ?", sess.ID, sess.UserID).
		Select("treatment_id", "session_date", "session_type", "fee_charged", "is_paid").
		Updates(sess)
	if res.Error != nil {
		return fmt.Errorf("update session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &ledger.NotFoundError{Entity: "session", ID: sess.ID}
	}
	return nil
}

// TogglePaid flips the paid flag of a session and returns the stored row.
func (s *Store) TogglePaid(ctx context.Context, ownerID, id string) (model.Session, error) {
	sess, err := s.GetSession(ctx, ownerID, id)
	if err != nil {
		return model.Session{}, err
	}
	sess.IsPaid = !sess.IsPaid
	if err := s.db.WithContext(ctx).Model(&model.Session{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Update("is_paid", sess.IsPaid).Error; err != nil {
		return model.Session{}, fmt.Errorf("toggle session paid: %w", err)
	}
	return sess, nil
}

func (s *Store) DeleteSession(ctx context.Context, ownerID, id string) error {
	res := s.db.WithContext(ctx).Where("user_id = ? AND id = ?", ownerID, id).Delete(&model.Session{})
	if res.Error != nil {
		return fmt.Errorf("delete session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &ledger.NotFoundError{Entity: "session", ID: id}
	}
	return nil
}
