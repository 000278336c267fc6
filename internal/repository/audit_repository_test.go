package repository_test

import (
	"testing"
	"time"

	"go-supermart-pos/internal/models"
	"go-supermart-pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditQueryPreservesRelativeOrder(t *testing.T) {
	db := newTestDB(t)
	audit := repository.NewAuditRepo(db)

	base := time.Now().Add(-time.Hour)
	for i, action := range []string{models.AuditLogin, models.AuditSaleCompleted, models.AuditLogout} {
		require.NoError(t, audit.Append(&models.AuditLog{
			UserID:    1,
			Action:    action,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	entries, err := audit.Query(repository.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first; entries created at t1 < t2 keep that relative order.
	assert.Equal(t, models.AuditLogout, entries[0].Action)
	assert.Equal(t, models.AuditSaleCompleted, entries[1].Action)
	assert.Equal(t, models.AuditLogin, entries[2].Action)
}

func TestAuditQueryTieBreaksOnInsertOrder(t *testing.T) {
	db := newTestDB(t)
	audit := repository.NewAuditRepo(db)

	at := time.Now().Truncate(time.Second)
	require.NoError(t, audit.Append(&models.AuditLog{UserID: 1, Action: "FIRST", CreatedAt: at}))
	require.NoError(t, audit.Append(&models.AuditLog{UserID: 1, Action: "SECOND", CreatedAt: at}))

	entries, err := audit.Query(repository.AuditFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "SECOND", entries[0].Action)
	assert.Equal(t, "FIRST", entries[1].Action)
}

func TestAuditQueryFilters(t *testing.T) {
	db := newTestDB(t)
	audit := repository.NewAuditRepo(db)

	now := time.Now()
	require.NoError(t, audit.Append(&models.AuditLog{UserID: 1, Action: models.AuditLogin, CreatedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, audit.Append(&models.AuditLog{UserID: 2, Action: models.AuditLogin, CreatedAt: now}))
	require.NoError(t, audit.Append(&models.AuditLog{UserID: 2, Action: models.AuditSaleCompleted, CreatedAt: now}))

	byUser, err := audit.Query(repository.AuditFilter{UserID: 2})
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	byAction, err := audit.Query(repository.AuditFilter{Action: models.AuditLogin})
	require.NoError(t, err)
	assert.Len(t, byAction, 2)

	recent, err := audit.Query(repository.AuditFilter{Start: now.Add(-time.Hour)})
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	limited, err := audit.Query(repository.AuditFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
