package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/it-institute-cms/internal/models"
)

type memoryAuditRepo struct {
	entries   []models.AuditLog
	createErr error
	lastLimit int
}

func (m *memoryAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	if m.createErr != nil {
		return m.createErr
	}
	entry.ID = int64(len(m.entries) + 1)
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memoryAuditRepo) ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	m.lastLimit = limit
	return m.entries, nil
}

func TestAuditServiceRecord(t *testing.T) {
	repo := &memoryAuditRepo{}
	svc := NewAuditService(repo, nil)

	svc.Record(context.Background(), &models.AuditLog{Action: "POST", Resource: "subjects", Status: 201})
	require.Len(t, repo.entries, 1)

	repo.createErr = errDBDown
	assert.NotPanics(t, func() {
		svc.Record(context.Background(), &models.AuditLog{Action: "DELETE", Resource: "subjects"})
	})

	var nilSvc *AuditService
	assert.NotPanics(t, func() { nilSvc.Record(context.Background(), &models.AuditLog{}) })
}

func TestAuditServiceRecentClampsLimit(t *testing.T) {
	repo := &memoryAuditRepo{}
	svc := NewAuditService(repo, nil)

	_, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastLimit)

	_, err = svc.Recent(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastLimit)
}
