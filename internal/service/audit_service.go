package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/it-institute-cms/internal/models"
)

type auditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error)
}

// AuditService records CMS writes.
type AuditService struct {
	repo   auditRepository
	logger *zap.Logger
}

// NewAuditService constructs an AuditService.
func NewAuditService(repo auditRepository, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{repo: repo, logger: logger}
}

// Record stores an entry. Failures are logged and swallowed so auditing never
// breaks the request that triggered it.
func (s *AuditService) Record(ctx context.Context, entry *models.AuditLog) {
	if s == nil || s.repo == nil || entry == nil {
		return
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to record audit log",
			zap.String("action", entry.Action),
			zap.String("resource", entry.Resource),
			zap.Error(err),
		)
	}
}

// Recent returns the latest entries, newest first.
func (s *AuditService) Recent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	entries, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, checkFailed(err, "failed to list audit logs")
	}
	return entries, nil
}
