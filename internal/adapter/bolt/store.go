// Package bolt stores conversations in an embedded bbolt database: one
// nested bucket per user, keyed by the bucket sequence.
package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/heartmarshall/reflect-backend/internal/domain"
)

var conversationsBucket = []byte("conversations")

type record struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	SessionID *string   `json:"session_id,omitempty"`
}

// Store is a bbolt-backed conversation store.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create bolt dir: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(conversationsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create conversations bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append adds msg under the next sequence number of its user's bucket.
func (s *Store) Append(ctx context.Context, msg domain.Message) error {
	key, err := userKey(msg.UserID)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(record{
		ID:        msg.ID,
		UserID:    msg.UserID,
		Role:      msg.Role.String(),
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
		SessionID: msg.SessionID,
	})
	if err != nil {
		return fmt.Errorf("%w: encode message: %w", domain.ErrStorage, err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket(conversationsBucket).CreateBucketIfNotExists(key)
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(itob(seq), data)
	})
	if err != nil {
		return fmt.Errorf("%w: append message for %s: %w", domain.ErrStorage, key, err)
	}
	return nil
}

// LoadConversation returns the user's messages ordered by timestamp, ties in
// append order.
func (s *Store) LoadConversation(ctx context.Context, userID string) ([]domain.Message, error) {
	key, err := userKey(userID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	msgs := []domain.Message{}
	err = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(conversationsBucket).Bucket(key)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var r record
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			// Distinct ids can sanitize to the same bucket.
			if r.UserID != userID {
				return nil
			}
			msgs = append(msgs, domain.Message{
				ID:        r.ID,
				UserID:    r.UserID,
				Role:      domain.Role(r.Role),
				Content:   r.Content,
				Timestamp: r.Timestamp,
				SessionID: r.SessionID,
			})
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: load conversation %s: %w", domain.ErrStorage, key, err)
	}

	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp.Before(msgs[j].Timestamp)
	})
	return msgs, nil
}

// Ping runs an empty read transaction.
func (s *Store) Ping(_ context.Context) error {
	if err := s.db.View(func(*bolt.Tx) error { return nil }); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorage, err)
	}
	return nil
}

func userKey(userID string) ([]byte, error) {
	key := domain.SanitizeUserID(userID)
	if key == "" {
		return nil, domain.NewValidationError("user_id", "must contain letters, digits, '_' or '-'")
	}
	return []byte(key), nil
}

// itob encodes v big-endian so byte order equals numeric order.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
