package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/it-institute-cms/internal/dto"
	"github.com/noah-isme/it-institute-cms/internal/models"
	"github.com/noah-isme/it-institute-cms/internal/sanitize"
	appErrors "github.com/noah-isme/it-institute-cms/pkg/errors"
)

type subjectRepository interface {
	List(ctx context.Context) ([]models.Subject, error)
	FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Subject, error)
	ExistsByName(ctx context.Context, exec sqlx.ExtContext, name string, excludeID int64) (bool, error)
	Create(ctx context.Context, exec sqlx.ExtContext, subject *models.Subject) error
	Update(ctx context.Context, exec sqlx.ExtContext, subject *models.Subject) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error
}

// SubjectService handles subject domain workflows.
type SubjectService struct {
	repo      subjectRepository
	tx        transactor
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService creates a new subject service.
func NewSubjectService(repo subjectRepository, tx transactor, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	validate, logger = defaults(validate, logger)
	return &SubjectService{repo: repo, tx: tx, validator: validate, logger: logger}
}

// List returns all subjects.
func (s *SubjectService) List(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.repo.List(ctx)
	if err != nil {
		return nil, checkFailed(err, "failed to list subjects")
	}
	return subjects, nil
}

// Create adds a new subject ensuring name uniqueness.
func (s *SubjectService) Create(ctx context.Context, req dto.CreateSubjectRequest) (*models.Subject, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = sanitize.HTML(req.Description)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid subject payload")
	}

	subject := &models.Subject{Name: req.Name, Description: req.Description, Icon: normalizeIcon(req.Icon)}
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		exists, err := s.repo.ExistsByName(ctx, exec, subject.Name, 0)
		if err != nil {
			return checkFailed(err, "failed to check subject name")
		}
		if exists {
			return appErrors.Clone(appErrors.ErrConflict, "subject with this name already exists")
		}
		return s.repo.Create(ctx, exec, subject)
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not create subject")
	}
	return subject, nil
}

// Update applies a partial patch to an existing subject.
func (s *SubjectService) Update(ctx context.Context, id int64, req dto.UpdateSubjectRequest) (*models.Subject, error) {
	req.Name = trimPtr(req.Name)
	req.Description = sanitize.HTMLPtr(req.Description)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid subject payload")
	}

	var subject *models.Subject
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		current, err := s.repo.FindByID(ctx, exec, id)
		if err != nil {
			return lookupError(err, "subject not found", "failed to load subject")
		}
		if req.Name != nil {
			exists, err := s.repo.ExistsByName(ctx, exec, *req.Name, id)
			if err != nil {
				return checkFailed(err, "failed to check subject name")
			}
			if exists {
				return appErrors.Clone(appErrors.ErrConflict, "subject with this name already exists")
			}
			current.Name = *req.Name
		}
		if req.Description != nil {
			current.Description = *req.Description
		}
		if req.Icon != nil {
			current.Icon = normalizeIcon(req.Icon)
		}
		if err := s.repo.Update(ctx, exec, current); err != nil {
			return err
		}
		subject = current
		return nil
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not update subject")
	}
	return subject, nil
}

// Delete removes a subject and returns the deleted record.
func (s *SubjectService) Delete(ctx context.Context, id int64) (*models.Subject, error) {
	var subject *models.Subject
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		current, err := s.repo.FindByID(ctx, exec, id)
		if err != nil {
			return lookupError(err, "subject not found", "failed to load subject")
		}
		if err := s.repo.Delete(ctx, exec, id); err != nil {
			return err
		}
		subject = current
		return nil
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not delete subject")
	}
	return subject, nil
}
