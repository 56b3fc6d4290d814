package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/it-institute-cms/internal/models"
)

const featureColumns = `id, title, description, svg_code`

// FeatureRepository handles persistence for landing page features.
type FeatureRepository struct {
	db *sqlx.DB
}

// NewFeatureRepository creates a new repository instance.
func NewFeatureRepository(db *sqlx.DB) *FeatureRepository {
	return &FeatureRepository{db: db}
}

// List returns all features ordered by id.
func (r *FeatureRepository) List(ctx context.Context) ([]models.Feature, error) {
	features := []models.Feature{}
	if err := r.db.SelectContext(ctx, &features, `SELECT `+featureColumns+` FROM features ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list features: %w", err)
	}
	return features, nil
}

// FindByID returns a feature by id.
func (r *FeatureRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Feature, error) {
	var feature models.Feature
	if err := sqlx.GetContext(ctx, pick(r.db, exec), &feature, `SELECT `+featureColumns+` FROM features WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find feature: %w", err)
	}
	return &feature, nil
}

// ExistsByTitle checks uniqueness of the feature title.
func (r *FeatureRepository) ExistsByTitle(ctx context.Context, exec sqlx.ExtContext, title string, excludeID int64) (bool, error) {
	return existsBy(ctx, pick(r.db, exec), "features", "title", title, excludeID)
}

// Create persists a new feature and assigns its id.
func (r *FeatureRepository) Create(ctx context.Context, exec sqlx.ExtContext, feature *models.Feature) error {
	const query = `INSERT INTO features (title, description, svg_code) VALUES ($1, $2, $3) RETURNING id`
	if err := sqlx.GetContext(ctx, pick(r.db, exec), &feature.ID, query, feature.Title, feature.Description, feature.Icon); err != nil {
		return fmt.Errorf("create feature: %w", err)
	}
	return nil
}

// Update overwrites every mutable column.
func (r *FeatureRepository) Update(ctx context.Context, exec sqlx.ExtContext, feature *models.Feature) error {
	const query = `UPDATE features SET title = $2, description = $3, svg_code = $4 WHERE id = $1`
	if _, err := pick(r.db, exec).ExecContext(ctx, query, feature.ID, feature.Title, feature.Description, feature.Icon); err != nil {
		return fmt.Errorf("update feature: %w", err)
	}
	return nil
}

// Delete removes a feature record.
func (r *FeatureRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	return deleteByID(ctx, pick(r.db, exec), "features", id)
}
