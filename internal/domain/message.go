package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single persisted conversation turn. It is immutable once created.
type Message struct {
	ID        uuid.UUID
	UserID    string
	SessionID *string
	Role      Role
	Content   string
	Timestamp time.Time
}

// NewMessage stamps a fresh id and the current UTC time.
func NewMessage(userID string, role Role, content string) Message {
	return Message{
		ID:        uuid.New(),
		UserID:    userID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// ChatMessage is the role-tagged unit sent to a language model.
type ChatMessage struct {
	Role    Role
	Content string
}

// ChatHistory converts stored messages into model input, preserving order.
func ChatHistory(msgs []Message) []ChatMessage {
	out := make([]ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, ChatMessage{Role: m.Role, Content: m.Content})
	}
	return out
}

// ClassificationResult is the uniform result of a keyword classifier.
// Category is empty when nothing matched.
type ClassificationResult struct {
	Flag     bool
	Category string
	Details  string
}
