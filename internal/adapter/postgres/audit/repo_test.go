//go:build integration

package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/reflect-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/reflect-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/reflect-backend/internal/domain"
)

func newRepo(t *testing.T) *audit.Repo {
	t.Helper()
	return audit.New(testhelper.SetupTestDB(t))
}

func TestRepo_WriteAndList(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()
	uid := "u-" + uuid.NewString()

	first := domain.NewAuditEvent(domain.AuditCrisisDetected, uid, map[string]string{
		"crisis_type":      "suicide",
		"user_text_length": "21",
	})
	first.Timestamp = first.Timestamp.Add(-time.Minute).Truncate(time.Microsecond)
	second := domain.NewAuditEvent(domain.AuditDataAccess, uid, map[string]string{"action": "read"})
	second.Timestamp = second.Timestamp.Truncate(time.Microsecond)

	require.NoError(t, repo.Write(ctx, first))
	require.NoError(t, repo.Write(ctx, second))

	got, err := repo.ListByUser(ctx, uid, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// newest first
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, domain.AuditDataAccess, got[0].Kind)
	assert.Equal(t, "read", got[0].Fields["action"])
	assert.Equal(t, first.ID, got[1].ID)
	assert.Equal(t, "suicide", got[1].Fields["crisis_type"])
	assert.True(t, first.Timestamp.Equal(got[1].Timestamp))
}

func TestRepo_WriteWithoutUser(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	ev := domain.NewAuditEvent(domain.AuditBiasDetected, "", map[string]string{"bias_type": "gender_stereotype"})
	require.NoError(t, repo.Write(context.Background(), ev))
}

func TestRepo_DuplicateID(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	ev := domain.NewAuditEvent(domain.AuditDataAccess, "u-"+uuid.NewString(), nil)
	require.NoError(t, repo.Write(ctx, ev))

	err := repo.Write(ctx, ev)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRepo_ListLimit(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()
	uid := "u-" + uuid.NewString()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Write(ctx, domain.NewAuditEvent(domain.AuditDataAccess, uid, nil)))
	}

	got, err := repo.ListByUser(ctx, uid, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
