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

type achievementRepository interface {
	List(ctx context.Context) ([]models.Achievement, error)
	FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Achievement, error)
	ExistsByTitle(ctx context.Context, exec sqlx.ExtContext, title string, excludeID int64) (bool, error)
	Create(ctx context.Context, exec sqlx.ExtContext, achievement *models.Achievement) error
	Update(ctx context.Context, exec sqlx.ExtContext, achievement *models.Achievement) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error
}

// AchievementService handles news-like achievement records.
type AchievementService struct {
	repo      achievementRepository
	tx        transactor
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAchievementService creates a new achievement service.
func NewAchievementService(repo achievementRepository, tx transactor, validate *validator.Validate, logger *zap.Logger) *AchievementService {
	validate, logger = defaults(validate, logger)
	return &AchievementService{repo: repo, tx: tx, validator: validate, logger: logger}
}

// List returns all achievements.
func (s *AchievementService) List(ctx context.Context) ([]models.Achievement, error) {
	achievements, err := s.repo.List(ctx)
	if err != nil {
		return nil, checkFailed(err, "failed to list achievements")
	}
	return achievements, nil
}

// Create adds an achievement with a unique title.
func (s *AchievementService) Create(ctx context.Context, req dto.CreateAchievementRequest) (*models.Achievement, error) {
	req.Theme = strings.TrimSpace(req.Theme)
	req.Title = strings.TrimSpace(req.Title)
	req.Description = sanitize.HTML(req.Description)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid achievement payload")
	}

	achievement := &models.Achievement{Theme: req.Theme, Title: req.Title, Description: req.Description}
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		exists, err := s.repo.ExistsByTitle(ctx, exec, achievement.Title, 0)
		if err != nil {
			return checkFailed(err, "failed to check achievement title")
		}
		if exists {
			return appErrors.Clone(appErrors.ErrConflict, "achievement with this title already exists")
		}
		return s.repo.Create(ctx, exec, achievement)
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not create achievement")
	}
	return achievement, nil
}

// Update applies a partial patch to an achievement.
func (s *AchievementService) Update(ctx context.Context, id int64, req dto.UpdateAchievementRequest) (*models.Achievement, error) {
	req.Theme = trimPtr(req.Theme)
	req.Title = trimPtr(req.Title)
	req.Description = sanitize.HTMLPtr(req.Description)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid achievement payload")
	}

	var achievement *models.Achievement
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		current, err := s.repo.FindByID(ctx, exec, id)
		if err != nil {
			return lookupError(err, "achievement not found", "failed to load achievement")
		}
		if req.Title != nil {
			exists, err := s.repo.ExistsByTitle(ctx, exec, *req.Title, id)
			if err != nil {
				return checkFailed(err, "failed to check achievement title")
			}
			if exists {
				return appErrors.Clone(appErrors.ErrConflict, "achievement with this title already exists")
			}
			current.Title = *req.Title
		}
		if req.Theme != nil {
			current.Theme = *req.Theme
		}
		if req.Description != nil {
			current.Description = *req.Description
		}
		if err := s.repo.Update(ctx, exec, current); err != nil {
			return err
		}
		achievement = current
		return nil
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not update achievement")
	}
	return achievement, nil
}

// Delete removes an achievement and returns the deleted record.
func (s *AchievementService) Delete(ctx context.Context, id int64) (*models.Achievement, error) {
	var achievement *models.Achievement
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		current, err := s.repo.FindByID(ctx, exec, id)
		if err != nil {
			return lookupError(err, "achievement not found", "failed to load achievement")
		}
		if err := s.repo.Delete(ctx, exec, id); err != nil {
			return err
		}
		achievement = current
		return nil
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not delete achievement")
	}
	return achievement, nil
}
