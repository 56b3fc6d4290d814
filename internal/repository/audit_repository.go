package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/it-institute-cms/internal/models"
)

// AuditRepository stores the CMS write trail.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository creates a new repository instance.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create inserts one audit record.
func (r *AuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	const query = `INSERT INTO audit_logs (user_id, action, resource, resource_id, status, ip, user_agent)
VALUES (:user_id, :action, :resource, :resource_id, :status, :ip, :user_agent)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// ListRecent returns the latest audit records, newest first.
func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	const query = `SELECT id, user_id, action, resource, resource_id, status, COALESCE(ip, '') AS ip, COALESCE(user_agent, '') AS user_agent, created_at
FROM audit_logs ORDER BY created_at DESC, id DESC LIMIT $1`
	logs := []models.AuditLog{}
	if err := r.db.SelectContext(ctx, &logs, query, limit); err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}
