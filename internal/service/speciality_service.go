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

type specialityRepository interface {
	List(ctx context.Context) ([]models.Speciality, error)
	FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Speciality, error)
	ExistsByName(ctx context.Context, exec sqlx.ExtContext, name string, excludeID int64) (bool, error)
	Create(ctx context.Context, exec sqlx.ExtContext, speciality *models.Speciality) error
	Update(ctx context.Context, exec sqlx.ExtContext, speciality *models.Speciality) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error
}

// SpecialityService handles educational programmes.
type SpecialityService struct {
	repo      specialityRepository
	tx        transactor
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSpecialityService creates a new speciality service.
func NewSpecialityService(repo specialityRepository, tx transactor, validate *validator.Validate, logger *zap.Logger) *SpecialityService {
	validate, logger = defaults(validate, logger)
	return &SpecialityService{repo: repo, tx: tx, validator: validate, logger: logger}
}

// List returns all specialities.
func (s *SpecialityService) List(ctx context.Context) ([]models.Speciality, error) {
	specialities, err := s.repo.List(ctx)
	if err != nil {
		return nil, checkFailed(err, "failed to list specialities")
	}
	return specialities, nil
}

// Create adds a speciality with a unique name.
func (s *SpecialityService) Create(ctx context.Context, req dto.CreateSpecialityRequest) (*models.Speciality, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Qualification = strings.TrimSpace(req.Qualification)
	req.Direction = strings.TrimSpace(req.Direction)
	req.Description = sanitize.HTML(req.Description)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid speciality payload")
	}

	speciality := &models.Speciality{
		Name:          req.Name,
		Qualification: req.Qualification,
		Term:          req.Term,
		Direction:     req.Direction,
		Description:   req.Description,
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		exists, err := s.repo.ExistsByName(ctx, exec, speciality.Name, 0)
		if err != nil {
			return checkFailed(err, "failed to check speciality name")
		}
		if exists {
			return appErrors.Clone(appErrors.ErrConflict, "speciality with this name already exists")
		}
		return s.repo.Create(ctx, exec, speciality)
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not create speciality")
	}
	return speciality, nil
}

// Update applies a partial patch to a speciality.
func (s *SpecialityService) Update(ctx context.Context, id int64, req dto.UpdateSpecialityRequest) (*models.Speciality, error) {
	req.Name = trimPtr(req.Name)
	req.Qualification = trimPtr(req.Qualification)
	req.Direction = trimPtr(req.Direction)
	req.Description = sanitize.HTMLPtr(req.Description)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid speciality payload")
	}

	var speciality *models.Speciality
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		current, err := s.repo.FindByID(ctx, exec, id)
		if err != nil {
			return lookupError(err, "speciality not found", "failed to load speciality")
		}
		if req.Name != nil {
			exists, err := s.repo.ExistsByName(ctx, exec, *req.Name, id)
			if err != nil {
				return checkFailed(err, "failed to check speciality name")
			}
			if exists {
				return appErrors.Clone(appErrors.ErrConflict, "speciality with this name already exists")
			}
			current.Name = *req.Name
		}
		if req.Qualification != nil {
			current.Qualification = *req.Qualification
		}
		if req.Term != nil {
			current.Term = *req.Term
		}
		if req.Direction != nil {
			current.Direction = *req.Direction
		}
		if req.Description != nil {
			current.Description = *req.Description
		}
		if err := s.repo.Update(ctx, exec, current); err != nil {
			return err
		}
		speciality = current
		return nil
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not update speciality")
	}
	return speciality, nil
}

// Delete removes a speciality and returns the deleted record.
func (s *SpecialityService) Delete(ctx context.Context, id int64) (*models.Speciality, error) {
	var speciality *models.Speciality
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		current, err := s.repo.FindByID(ctx, exec, id)
		if err != nil {
			return lookupError(err, "speciality not found", "failed to load speciality")
		}
		if err := s.repo.Delete(ctx, exec, id); err != nil {
			return err
		}
		speciality = current
		return nil
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not delete speciality")
	}
	return speciality, nil
}
