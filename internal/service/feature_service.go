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

type featureRepository interface {
	List(ctx context.Context) ([]models.Feature, error)
	FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Feature, error)
	ExistsByTitle(ctx context.Context, exec sqlx.ExtContext, title string, excludeID int64) (bool, error)
	Create(ctx context.Context, exec sqlx.ExtContext, feature *models.Feature) error
	Update(ctx context.Context, exec sqlx.ExtContext, feature *models.Feature) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error
}

// FeatureService handles landing page features.
type FeatureService struct {
	repo      featureRepository
	tx        transactor
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeatureService creates a new feature service.
func NewFeatureService(repo featureRepository, tx transactor, validate *validator.Validate, logger *zap.Logger) *FeatureService {
	validate, logger = defaults(validate, logger)
	return &FeatureService{repo: repo, tx: tx, validator: validate, logger: logger}
}

// List returns all features.
func (s *FeatureService) List(ctx context.Context) ([]models.Feature, error) {
	features, err := s.repo.List(ctx)
	if err != nil {
		return nil, checkFailed(err, "failed to list features")
	}
	return features, nil
}

// Create adds a feature with a unique title.
func (s *FeatureService) Create(ctx context.Context, req dto.CreateFeatureRequest) (*models.Feature, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = sanitize.HTML(req.Description)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid feature payload")
	}

	feature := &models.Feature{Title: req.Title, Description: req.Description, Icon: normalizeIcon(req.Icon)}
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		exists, err := s.repo.ExistsByTitle(ctx, exec, feature.Title, 0)
		if err != nil {
			return checkFailed(err, "failed to check feature title")
		}
		if exists {
			return appErrors.Clone(appErrors.ErrConflict, "feature with this title already exists")
		}
		return s.repo.Create(ctx, exec, feature)
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not create feature")
	}
	return feature, nil
}

// Update applies a partial patch to a feature.
func (s *FeatureService) Update(ctx context.Context, id int64, req dto.UpdateFeatureRequest) (*models.Feature, error) {
	req.Title = trimPtr(req.Title)
	req.Description = sanitize.HTMLPtr(req.Description)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid feature payload")
	}

	var feature *models.Feature
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		current, err := s.repo.FindByID(ctx, exec, id)
		if err != nil {
			return lookupError(err, "feature not found", "failed to load feature")
		}
		if req.Title != nil {
			exists, err := s.repo.ExistsByTitle(ctx, exec, *req.Title, id)
			if err != nil {
				return checkFailed(err, "failed to check feature title")
			}
			if exists {
				return appErrors.Clone(appErrors.ErrConflict, "feature with this title already exists")
			}
			current.Title = *req.Title
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
		feature = current
		return nil
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not update feature")
	}
	return feature, nil
}

// Delete removes a feature and returns the deleted record.
func (s *FeatureService) Delete(ctx context.Context, id int64) (*models.Feature, error) {
	var feature *models.Feature
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		current, err := s.repo.FindByID(ctx, exec, id)
		if err != nil {
			return lookupError(err, "feature not found", "failed to load feature")
		}
		if err := s.repo.Delete(ctx, exec, id); err != nil {
			return err
		}
		feature = current
		return nil
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not delete feature")
	}
	return feature, nil
}
