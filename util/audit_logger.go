package util

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fgiusti90/psico-app/ledger"
	"github.com/fgiusti90/psico-app/model"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEventType represents different types of audit events
type AuditEventType string

const (
	EventFeeAdjustmentApplied AuditEventType = "FEE_ADJUSTMENT_APPLIED"
	EventFeeAdjustmentEdited  AuditEventType = "FEE_ADJUSTMENT_EDITED"
	EventFeeAdjustmentDeleted AuditEventType = "FEE_ADJUSTMENT_DELETED"
	EventBackdatedAdjustment  AuditEventType = "BACKDATED_ADJUSTMENT"
	EventInflationRecorded    AuditEventType = "INFLATION_RECORDED"
	EventInflationDeleted     AuditEventType = "INFLATION_DELETED"
	EventUnauthorizedAccess   AuditEventType = "UNAUTHORIZED_ACCESS"
	EventRateLimitExceeded    AuditEventType = "RATE_LIMIT_EXCEEDED"
	EventRateLimitFailure     AuditEventType = "RATE_LIMIT_FAILURE"
	EventEndpointCall         AuditEventType = "ENDPOINT_CALL"
)

// AuditEvent represents an audit event to be logged
type AuditEvent struct {
	EventType AuditEventType
	UserID    string
	EntityID  string
	IP        string
	UserAgent string
	Message   string
	Details   map[string]interface{}
}

var (
	auditMu     sync.RWMutex
	auditLogger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "audit").Logger()
	auditDB     *gorm.DB
)

// SetAuditLogger replaces the logger audit events are written to.
func SetAuditLogger(l zerolog.Logger) {
	auditMu.Lock()
	defer auditMu.Unlock()
	auditLogger = l.With().Str("component", "audit").Logger()
}

// SetAuditLoggerDB sets a gorm DB instance used to persist audit events.
// Call this during application startup after DB initialization.
func SetAuditLoggerDB(db *gorm.DB) {
	auditMu.Lock()
	defer auditMu.Unlock()
	auditDB = db
}

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// LogAuditEvent logs an audit event and persists it when a DB is set.
// Persistence is best-effort and never fails the caller.
func LogAuditEvent(event AuditEvent) {
	auditMu.RLock()
	logger, db := auditLogger, auditDB
	auditMu.RUnlock()

	entry := model.AuditLog{
		EventType: sanitizeLogValue(string(event.EventType)),
		UserID:    sanitizeLogValue(event.UserID),
		EntityID:  sanitizeLogValue(event.EntityID),
		IP:        sanitizeLogValue(event.IP),
		UserAgent: sanitizeLogValue(event.UserAgent),
		Message:   sanitizeLogValue(event.Message),
	}

	logger.Info().
		Str("event", entry.EventType).
		Str("user_id", entry.UserID).
		Str("entity_id", entry.EntityID).
		Str("ip", entry.IP).
		Str("user_agent", entry.UserAgent).
		Int("details", len(event.Details)).
		Msg(entry.Message)

	if db == nil {
		return
	}
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			entry.Details = datatypes.JSON(b)
		}
	}
	if err := db.Create(&entry).Error; err != nil {
		logger.Warn().Err(err).Msg("failed to persist audit event")
	}
}

// LogFeeChange records a committed fee ledger change. Backdated applies are
// recorded a second time under their own event type.
func LogFeeChange(change ledger.Change, ip, userAgent string) {
	adj := change.Adjustment
	event := AuditEvent{
		UserID:    adj.UserID,
		EntityID:  adj.ID,
		IP:        ip,
		UserAgent: userAgent,
		Details: map[string]interface{}{
			"treatment_id":          adj.TreatmentID,
			"previous_fee":          adj.PreviousFee,
			"new_fee":               adj.NewFee,
			"adjustment_percentage": adj.AdjustmentPercentage,
			"adjustment_date":       adj.AdjustmentDate,
			"fee_changed":           change.FeeChanged,
			"previous_current_fee":  change.PreviousCurrentFee,
			"current_fee":           change.Treatment.CurrentFee,
		},
	}
	switch change.Kind {
	case ledger.ChangeApply:
		event.EventType = EventFeeAdjustmentApplied
		event.Message = fmt.Sprintf("Fee adjusted from %.2f to %.2f", adj.PreviousFee, adj.NewFee)
	case ledger.ChangeEdit:
		event.EventType = EventFeeAdjustmentEdited
		event.Message = fmt.Sprintf("Fee adjustment edited to %.2f", adj.NewFee)
	case ledger.ChangeDelete:
		event.EventType = EventFeeAdjustmentDeleted
		event.Message = fmt.Sprintf("Fee adjustment deleted, current fee %.2f", change.Treatment.CurrentFee)
	}
	LogAuditEvent(event)

	if change.Backdated {
		event.EventType = EventBackdatedAdjustment
		event.Message = fmt.Sprintf("Adjustment dated %s precedes the latest one", adj.AdjustmentDate)
		LogAuditEvent(event)
	}
}

// LogUnauthorizedAccess logs unauthorized access attempts
func LogUnauthorizedAccess(ip, resource, reason string) {
	LogAuditEvent(AuditEvent{
		EventType: EventUnauthorizedAccess,
		IP:        ip,
		Message:   fmt.Sprintf("Unauthorized access to %s: %s", resource, reason),
	})
}

// LogRateLimitExceeded logs when rate limit is exceeded
func LogRateLimitExceeded(userID, ip, endpoint string) {
	LogAuditEvent(AuditEvent{
		EventType: EventRateLimitExceeded,
		UserID:    userID,
		IP:        ip,
		Message:   fmt.Sprintf("Rate limit exceeded for endpoint: %s", endpoint),
	})
}
