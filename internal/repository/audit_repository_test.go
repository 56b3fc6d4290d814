package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/it-institute-cms/internal/models"
	appErrors "github.com/noah-isme/it-institute-cms/pkg/errors"
)

func TestAuditCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	userID := int64(1)
	resourceID := "7"
	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(&userID, "DELETE", "subject", &resourceID, 200, "127.0.0.1", "curl").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), &models.AuditLog{
		UserID: &userID, Action: "DELETE", Resource: "subject", ResourceID: &resourceID,
		Status: 200, IP: "127.0.0.1", UserAgent: "curl",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditListRecentClampsLimit(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "action", "resource", "resource_id", "status", "ip", "user_agent", "created_at"}).
		AddRow(1, 1, "POST", "subject", nil, 201, "", "", time.Now())
	mock.ExpectQuery("FROM audit_logs ORDER BY created_at DESC").
		WithArgs(100).
		WillReturnRows(rows)

	logs, err := repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheRepositoryWithoutClientMisses(t *testing.T) {
	repo := NewCacheRepository(nil, nil)

	var dest []models.Subject
	err := repo.Get(context.Background(), "public:subjects", &dest)
	assert.True(t, errors.Is(err, appErrors.ErrCacheMiss))
	assert.NoError(t, repo.Set(context.Background(), "public:subjects", dest, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(context.Background(), "public:*"))
	assert.NoError(t, repo.Close())
}
