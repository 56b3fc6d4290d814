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

const directionDeletedMessage = "direction deleted"

type directionRepository interface {
	List(ctx context.Context) ([]models.Direction, error)
	FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Direction, error)
	ExistsByName(ctx context.Context, exec sqlx.ExtContext, name string, excludeID int64) (bool, error)
	Create(ctx context.Context, exec sqlx.ExtContext, direction *models.Direction) error
	Update(ctx context.Context, exec sqlx.ExtContext, direction *models.Direction) error
	CountDisciplines(ctx context.Context, exec sqlx.ExtContext, id int64) (int64, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error
}

// DirectionService handles study plan directions.
type DirectionService struct {
	repo      directionRepository
	tx        transactor
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDirectionService creates a new direction service.
func NewDirectionService(repo directionRepository, tx transactor, validate *validator.Validate, logger *zap.Logger) *DirectionService {
	validate, logger = defaults(validate, logger)
	return &DirectionService{repo: repo, tx: tx, validator: validate, logger: logger}
}

// List returns all directions.
func (s *DirectionService) List(ctx context.Context) ([]models.Direction, error) {
	directions, err := s.repo.List(ctx)
	if err != nil {
		return nil, checkFailed(err, "failed to list directions")
	}
	return directions, nil
}

// Get returns one direction.
func (s *DirectionService) Get(ctx context.Context, id int64) (*models.Direction, error) {
	direction, err := s.repo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, lookupError(err, "direction not found", "failed to load direction")
	}
	return direction, nil
}

// Create adds a direction with a unique name.
func (s *DirectionService) Create(ctx context.Context, req dto.CreateDirectionRequest) (*models.Direction, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid direction payload")
	}

	direction := &models.Direction{Name: req.Name}
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		exists, err := s.repo.ExistsByName(ctx, exec, direction.Name, 0)
		if err != nil {
			return checkFailed(err, "failed to check direction name")
		}
		if exists {
			return appErrors.Clone(appErrors.ErrConflict, "direction with this name already exists")
		}
		return s.repo.Create(ctx, exec, direction)
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not create direction")
	}
	return direction, nil
}

// Update renames a direction.
func (s *DirectionService) Update(ctx context.Context, id int64, req dto.UpdateDirectionRequest) (*models.Direction, error) {
	req.Name = trimPtr(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid direction payload")
	}

	var direction *models.Direction
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		current, err := s.repo.FindByID(ctx, exec, id)
		if err != nil {
			return lookupError(err, "direction not found", "failed to load direction")
		}
		if req.Name != nil {
			exists, err := s.repo.ExistsByName(ctx, exec, *req.Name, id)
			if err != nil {
				return checkFailed(err, "failed to check direction name")
			}
			if exists {
				return appErrors.Clone(appErrors.ErrConflict, "direction with this name already exists")
			}
			current.Name = *req.Name
		}
		if err := s.repo.Update(ctx, exec, current); err != nil {
			return err
		}
		direction = current
		return nil
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not update direction")
	}
	return direction, nil
}

// Delete removes a direction together with its disciplines and reports how
// many disciplines went with it.
func (s *DirectionService) Delete(ctx context.Context, id int64) (*models.DirectionDeleteResult, error) {
	var result *models.DirectionDeleteResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		if _, err := s.repo.FindByID(ctx, exec, id); err != nil {
			return lookupError(err, "direction not found", "failed to load direction")
		}
		count, err := s.repo.CountDisciplines(ctx, exec, id)
		if err != nil {
			return checkFailed(err, "failed to count disciplines")
		}
		if err := s.repo.Delete(ctx, exec, id); err != nil {
			return err
		}
		result = &models.DirectionDeleteResult{Message: directionDeletedMessage, DeletedDisciplinesCount: count}
		return nil
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not delete direction")
	}
	s.logger.Info("direction deleted", zap.Int64("direction_id", id), zap.Int64("disciplines", result.DeletedDisciplinesCount))
	return result, nil
}
