package bolt

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/reflect-backend/internal/domain"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "reflect.db")
	s, err := Open(path)
	require.NoError(t, err)
	return s, path
}

func TestStore_AppendAndLoad(t *testing.T) {
	t.Parallel()

	s, _ := openStore(t)
	defer s.Close()
	ctx := context.Background()

	user := domain.NewMessage("u1", domain.RoleUser, "I feel lonely")
	reply := domain.NewMessage("u1", domain.RoleAssistant, "Tell me more.")
	require.NoError(t, s.Append(ctx, user))
	require.NoError(t, s.Append(ctx, reply))

	got, err := s.LoadConversation(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, user.ID, got[0].ID)
	assert.Equal(t, domain.RoleUser, got[0].Role)
	assert.Equal(t, reply.ID, got[1].ID)
	assert.Equal(t, "Tell me more.", got[1].Content)
}

func TestStore_LoadUnknownUser(t *testing.T) {
	t.Parallel()

	s, _ := openStore(t)
	defer s.Close()

	got, err := s.LoadConversation(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	s, path := openStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(ctx, domain.NewMessage("u1", domain.RoleUser, fmt.Sprintf("%d", i))))
	}
	require.NoError(t, s.Close())

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.LoadConversation(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i := range got {
		assert.Equal(t, fmt.Sprintf("%d", i), got[i].Content)
	}
}

func TestStore_EqualTimestampsKeepAppendOrder(t *testing.T) {
	t.Parallel()

	s, _ := openStore(t)
	defer s.Close()
	ctx := context.Background()
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	// More than 255 entries so that sequence keys cross a byte boundary.
	const n = 300
	for i := 0; i < n; i++ {
		m := domain.NewMessage("u1", domain.RoleUser, fmt.Sprintf("%d", i))
		m.Timestamp = ts
		require.NoError(t, s.Append(ctx, m))
	}

	got, err := s.LoadConversation(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, n)
	for i := range got {
		assert.Equal(t, fmt.Sprintf("%d", i), got[i].Content)
	}
}

func TestStore_CollidingSanitizedIDsStaySeparate(t *testing.T) {
	t.Parallel()

	s, _ := openStore(t)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, domain.NewMessage("alice.smith", domain.RoleUser, "private to alice.smith")))

	got, err := s.LoadConversation(ctx, "alicesmith")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.LoadConversation(ctx, "alice.smith")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "private to alice.smith", got[0].Content)
}

func TestStore_InvalidUserID(t *testing.T) {
	t.Parallel()

	s, _ := openStore(t)
	defer s.Close()

	err := s.Append(context.Background(), domain.NewMessage("", domain.RoleUser, "x"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStore_ConcurrentAppends(t *testing.T) {
	t.Parallel()

	s, _ := openStore(t)
	defer s.Close()
	ctx := context.Background()

	const users = 4
	const perUser = 25

	var wg sync.WaitGroup
	for u := 0; u < users; u++ {
		wg.Add(1)
		go func(u int) {
			defer wg.Done()
			uid := fmt.Sprintf("user-%d", u)
			for i := 0; i < perUser; i++ {
				if err := s.Append(ctx, domain.NewMessage(uid, domain.RoleUser, fmt.Sprintf("%d", i))); err != nil {
					t.Errorf("append: %v", err)
					return
				}
			}
		}(u)
	}
	wg.Wait()

	for u := 0; u < users; u++ {
		got, err := s.LoadConversation(ctx, fmt.Sprintf("user-%d", u))
		require.NoError(t, err)
		require.Len(t, got, perUser)
		for i := range got {
			assert.Equal(t, fmt.Sprintf("%d", i), got[i].Content)
		}
	}
}

func TestStore_Ping(t *testing.T) {
	t.Parallel()

	s, _ := openStore(t)
	require.NoError(t, s.Ping(context.Background()))

	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Ping(context.Background()), domain.ErrStorage)
}
