package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/it-institute-cms/internal/dto"
	"github.com/noah-isme/it-institute-cms/internal/models"
	appErrors "github.com/noah-isme/it-institute-cms/pkg/errors"
)

type disciplineRepository interface {
	List(ctx context.Context) ([]models.Discipline, error)
	FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Discipline, error)
	ExistsByName(ctx context.Context, exec sqlx.ExtContext, name string, excludeID int64) (bool, error)
	Create(ctx context.Context, exec sqlx.ExtContext, discipline *models.Discipline) error
	Update(ctx context.Context, exec sqlx.ExtContext, discipline *models.Discipline) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error
}

type directionChecker interface {
	Exists(ctx context.Context, exec sqlx.ExtContext, id int64) (bool, error)
}

// DisciplineService handles the disciplines of study plans.
type DisciplineService struct {
	repo       disciplineRepository
	directions directionChecker
	tx         transactor
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewDisciplineService creates a new discipline service.
func NewDisciplineService(repo disciplineRepository, directions directionChecker, tx transactor, validate *validator.Validate, logger *zap.Logger) *DisciplineService {
	validate, logger = defaults(validate, logger)
	return &DisciplineService{repo: repo, directions: directions, tx: tx, validator: validate, logger: logger}
}

// List returns all disciplines.
func (s *DisciplineService) List(ctx context.Context) ([]models.Discipline, error) {
	disciplines, err := s.repo.List(ctx)
	if err != nil {
		return nil, checkFailed(err, "failed to list disciplines")
	}
	return disciplines, nil
}

// Create adds a discipline to an existing direction.
func (s *DisciplineService) Create(ctx context.Context, req dto.CreateDisciplineRequest) (*models.Discipline, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Group = strings.TrimSpace(req.Group)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid discipline payload")
	}
	if req.StartTerm > req.EndTerm {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_term must not be greater than end_term")
	}
	if req.Group == "" {
		req.Group = models.DefaultDisciplineGroup
	}

	discipline := &models.Discipline{
		Name:        req.Name,
		StartTerm:   req.StartTerm,
		EndTerm:     req.EndTerm,
		Group:       req.Group,
		DirectionID: req.DirectionID,
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		if err := s.checkDirection(ctx, exec, discipline.DirectionID); err != nil {
			return err
		}
		exists, err := s.repo.ExistsByName(ctx, exec, discipline.Name, 0)
		if err != nil {
			return checkFailed(err, "failed to check discipline name")
		}
		if exists {
			return appErrors.Clone(appErrors.ErrConflict, "discipline with this name already exists")
		}
		return s.repo.Create(ctx, exec, discipline)
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not create discipline")
	}
	return discipline, nil
}

// Update applies a partial patch. The term range is validated on the merged
// record so a single-sided change cannot invert it.
func (s *DisciplineService) Update(ctx context.Context, id int64, req dto.UpdateDisciplineRequest) (*models.Discipline, error) {
	req.Name = trimPtr(req.Name)
	req.Group = trimPtr(req.Group)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid discipline payload")
	}

	var discipline *models.Discipline
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		current, err := s.repo.FindByID(ctx, exec, id)
		if err != nil {
			return lookupError(err, "discipline not found", "failed to load discipline")
		}
		if req.DirectionID != nil {
			if err := s.checkDirection(ctx, exec, *req.DirectionID); err != nil {
				return err
			}
			current.DirectionID = *req.DirectionID
		}
		if req.Name != nil {
			exists, err := s.repo.ExistsByName(ctx, exec, *req.Name, id)
			if err != nil {
				return checkFailed(err, "failed to check discipline name")
			}
			if exists {
				return appErrors.Clone(appErrors.ErrConflict, "discipline with this name already exists")
			}
			current.Name = *req.Name
		}
		if req.StartTerm != nil {
			current.StartTerm = *req.StartTerm
		}
		if req.EndTerm != nil {
			current.EndTerm = *req.EndTerm
		}
		if current.StartTerm > current.EndTerm {
			return appErrors.Clone(appErrors.ErrValidation, "start_term must not be greater than end_term")
		}
		if req.Group != nil {
			current.Group = *req.Group
		}
		if err := s.repo.Update(ctx, exec, current); err != nil {
			return err
		}
		discipline = current
		return nil
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not update discipline")
	}
	return discipline, nil
}

// Delete removes a discipline and returns the deleted record.
func (s *DisciplineService) Delete(ctx context.Context, id int64) (*models.Discipline, error) {
	var discipline *models.Discipline
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		current, err := s.repo.FindByID(ctx, exec, id)
		if err != nil {
			return lookupError(err, "discipline not found", "failed to load discipline")
		}
		if err := s.repo.Delete(ctx, exec, id); err != nil {
			return err
		}
		discipline = current
		return nil
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not delete discipline")
	}
	return discipline, nil
}

func (s *DisciplineService) checkDirection(ctx context.Context, exec sqlx.ExtContext, directionID int64) error {
	exists, err := s.directions.Exists(ctx, exec, directionID)
	if err != nil {
		return checkFailed(err, "failed to check direction")
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrReference, "direction does not exist")
	}
	return nil
}
