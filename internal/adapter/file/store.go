// Package file stores conversations as one JSON document per user in a
// directory.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/reflect-backend/internal/domain"
)

// record is the on-disk form of a message.
type record struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	SessionID *string   `json:"session_id,omitempty"`
}

// Store is a file-backed conversation store. Writes for one user are
// serialized; different users proceed independently.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates the directory if needed and returns a Store rooted at dir.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create conversation dir: %w", err)
	}
	return &Store{dir: dir, locks: make(map[string]*sync.Mutex)}, nil
}

// Append adds msg to the end of its user's conversation.
func (s *Store) Append(ctx context.Context, msg domain.Message) error {
	key, err := userKey(msg.UserID)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	lock := s.userLock(key)
	lock.Lock()
	defer lock.Unlock()

	recs, err := s.read(key)
	if err != nil {
		return err
	}
	recs = append(recs, toRecord(msg))
	return s.write(key, recs)
}

// LoadConversation returns the user's messages ordered by timestamp, with
// ties kept in append order. An unknown user has an empty conversation.
func (s *Store) LoadConversation(ctx context.Context, userID string) ([]domain.Message, error) {
	key, err := userKey(userID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lock := s.userLock(key)
	lock.Lock()
	recs, err := s.read(key)
	lock.Unlock()
	if err != nil {
		return nil, err
	}

	// Distinct ids can sanitize to the same key; keep only this user's records.
	msgs := make([]domain.Message, 0, len(recs))
	for _, r := range recs {
		if r.UserID == userID {
			msgs = append(msgs, toDomain(r))
		}
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp.Before(msgs[j].Timestamp)
	})
	return msgs, nil
}

// Ping checks that the directory is still reachable.
func (s *Store) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("%w: stat %s: %w", domain.ErrStorage, s.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrStorage, s.dir)
	}
	return nil
}

func (s *Store) userLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) read(key string) ([]record, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read conversation %s: %w", domain.ErrStorage, key, err)
	}
	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("%w: decode conversation %s: %w", domain.ErrStorage, key, err)
	}
	return recs, nil
}

// write replaces the user's file atomically via a temp file and rename.
func (s *Store) write(key string, recs []record) error {
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode conversation %s: %w", domain.ErrStorage, key, err)
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", domain.ErrStorage, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: write temp file: %w", domain.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: close temp file: %w", domain.ErrStorage, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: replace conversation %s: %w", domain.ErrStorage, key, err)
	}
	return nil
}

func userKey(userID string) (string, error) {
	key := domain.SanitizeUserID(userID)
	if key == "" {
		return "", domain.NewValidationError("user_id", "must contain letters, digits, '_' or '-'")
	}
	return key, nil
}

func toRecord(m domain.Message) record {
	return record{
		ID:        m.ID,
		UserID:    m.UserID,
		Role:      m.Role.String(),
		Content:   m.Content,
		Timestamp: m.Timestamp,
		SessionID: m.SessionID,
	}
}

func toDomain(r record) domain.Message {
	return domain.Message{
		ID:        r.ID,
		UserID:    r.UserID,
		Role:      domain.Role(r.Role),
		Content:   r.Content,
		Timestamp: r.Timestamp,
		SessionID: r.SessionID,
	}
}
