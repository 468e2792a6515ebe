// Package audit implements the audit sink using PostgreSQL.
// It provides append-only operations for audit events.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/reflect-backend/internal/adapter/postgres"
	"github.com/heartmarshall/reflect-backend/internal/domain"
)

const table = "audit_events"

// Repo provides audit event persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new audit repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Write inserts one audit event. Satisfies audit.Sink.
func (r *Repo) Write(ctx context.Context, event domain.AuditEvent) error {
	fields := event.Fields
	if fields == nil {
		fields = map[string]string{}
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("audit_event marshal fields: %w", err)
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "kind", "user_id", "created_at", "fields").
		Values(event.ID, event.Kind.String(), event.UserID, event.Timestamp, fieldsJSON).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert audit_event: %w", err)
	}

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "audit_event", event.ID.String())
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByUser returns a user's audit events, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.AuditEvent, error) {
	query, args, err := postgres.Builder().
		Select("id", "kind", "user_id", "created_at", "fields").
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select audit_events: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "audit_events", userID)
	}

	events, err := pgx.CollectRows(rows, scanEvent)
	if err != nil {
		return nil, postgres.MapError(err, "audit_events", userID)
	}
	return events, nil
}

func scanEvent(row pgx.CollectableRow) (domain.AuditEvent, error) {
	var (
		e          domain.AuditEvent
		kind       string
		fieldsJSON []byte
	)
	if err := row.Scan(&e.ID, &kind, &e.UserID, &e.Timestamp, &fieldsJSON); err != nil {
		return domain.AuditEvent{}, err
	}
	e.Kind = domain.AuditKind(kind)
	e.Timestamp = e.Timestamp.UTC()
	if err := json.Unmarshal(fieldsJSON, &e.Fields); err != nil {
		return domain.AuditEvent{}, fmt.Errorf("audit_event unmarshal fields: %w", err)
	}
	return e, nil
}
