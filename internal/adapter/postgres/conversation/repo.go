// Package conversation implements the conversation store using PostgreSQL.
// Rows are append-only; reads order by timestamp, then insertion sequence.
package conversation

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/reflect-backend/internal/adapter/postgres"
	"github.com/heartmarshall/reflect-backend/internal/domain"
)

const table = "conversations"

var columns = []string{"id", "user_id", "role", "content", "timestamp", "session_id"}

// Repo provides conversation persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new conversation repository. q is usually a *pgxpool.Pool.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// Append inserts a single message.
func (r *Repo) Append(ctx context.Context, msg domain.Message) error {
	if domain.IsBlank(msg.UserID) {
		return domain.NewValidationError("user_id", "required")
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(msg.ID, msg.UserID, msg.Role.String(), msg.Content, msg.Timestamp, msg.SessionID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert conversation: %w", err)
	}

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "conversation", msg.UserID)
	}
	return nil
}

// LoadConversation returns every message of userID in chronological order.
// An unknown user yields an empty slice.
func (r *Repo) LoadConversation(ctx context.Context, userID string) ([]domain.Message, error) {
	if domain.IsBlank(userID) {
		return nil, domain.NewValidationError("user_id", "required")
	}

	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("timestamp ASC", "seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select conversation: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "conversation", userID)
	}

	msgs, err := pgx.CollectRows(rows, scanMessage)
	if err != nil {
		return nil, postgres.MapError(err, "conversation", userID)
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	return msgs, nil
}

// Ping runs a trivial query.
func (r *Repo) Ping(ctx context.Context) error {
	var one int
	if err := r.q.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return postgres.MapError(err, "conversation", "ping")
	}
	return nil
}

func scanMessage(row pgx.CollectableRow) (domain.Message, error) {
	var (
		m    domain.Message
		id   uuid.UUID
		role string
	)
	if err := row.Scan(&id, &m.UserID, &role, &m.Content, &m.Timestamp, &m.SessionID); err != nil {
		return domain.Message{}, err
	}
	m.ID = id
	m.Role = domain.Role(role)
	m.Timestamp = m.Timestamp.UTC()
	return m, nil
}
