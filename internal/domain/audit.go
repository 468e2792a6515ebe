package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditEvent is an append-only compliance record. Fields hold the user's
// message text only for out_of_scope_query violations.
type AuditEvent struct {
	ID        uuid.UUID
	Kind      AuditKind
	UserID    string
	Timestamp time.Time
	Fields    map[string]string
}

// NewAuditEvent stamps a fresh id and the current UTC time.
func NewAuditEvent(kind AuditKind, userID string, fields map[string]string) AuditEvent {
	if fields == nil {
		fields = map[string]string{}
	}
	return AuditEvent{
		ID:        uuid.New(),
		Kind:      kind,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Fields:    fields,
	}
}
