package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/it-institute-cms/internal/models"
)

// DirectionRepository handles persistence for study plan directions.
type DirectionRepository struct {
	db *sqlx.DB
}

// NewDirectionRepository creates a new repository instance.
func NewDirectionRepository(db *sqlx.DB) *DirectionRepository {
	return &DirectionRepository{db: db}
}

// List returns all directions ordered by id.
func (r *DirectionRepository) List(ctx context.Context) ([]models.Direction, error) {
	directions := []models.Direction{}
	if err := r.db.SelectContext(ctx, &directions, `SELECT id, name FROM directions ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list directions: %w", err)
	}
	return directions, nil
}

// FindByID returns a direction by id.
func (r *DirectionRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Direction, error) {
	var direction models.Direction
	if err := sqlx.GetContext(ctx, pick(r.db, exec), &direction, `SELECT id, name FROM directions WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find direction: %w", err)
	}
	return &direction, nil
}

// Exists reports whether a direction with the id is present.
func (r *DirectionRepository) Exists(ctx context.Context, exec sqlx.ExtContext, id int64) (bool, error) {
	var exists bool
	if err := sqlx.GetContext(ctx, pick(r.db, exec), &exists, `SELECT EXISTS(SELECT 1 FROM directions WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("check direction: %w", err)
	}
	return exists, nil
}

// ExistsByName checks uniqueness of the direction name.
func (r *DirectionRepository) ExistsByName(ctx context.Context, exec sqlx.ExtContext, name string, excludeID int64) (bool, error) {
	return existsBy(ctx, pick(r.db, exec), "directions", "name", name, excludeID)
}

// Create persists a new direction and assigns its id.
func (r *DirectionRepository) Create(ctx context.Context, exec sqlx.ExtContext, direction *models.Direction) error {
	if err := sqlx.GetContext(ctx, pick(r.db, exec), &direction.ID, `INSERT INTO directions (name) VALUES ($1) RETURNING id`, direction.Name); err != nil {
		return fmt.Errorf("create direction: %w", err)
	}
	return nil
}

// Update renames a direction.
func (r *DirectionRepository) Update(ctx context.Context, exec sqlx.ExtContext, direction *models.Direction) error {
	if _, err := pick(r.db, exec).ExecContext(ctx, `UPDATE directions SET name = $2 WHERE id = $1`, direction.ID, direction.Name); err != nil {
		return fmt.Errorf("update direction: %w", err)
	}
	return nil
}

// CountDisciplines returns how many disciplines the direction owns.
func (r *DirectionRepository) CountDisciplines(ctx context.Context, exec sqlx.ExtContext, id int64) (int64, error) {
	var count int64
	if err := sqlx.GetContext(ctx, pick(r.db, exec), &count, `SELECT COUNT(*) FROM disciplines WHERE direction_id = $1`, id); err != nil {
		return 0, fmt.Errorf("count disciplines: %w", err)
	}
	return count, nil
}

// Delete removes a direction; owned disciplines go with it via ON DELETE CASCADE.
func (r *DirectionRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	return deleteByID(ctx, pick(r.db, exec), "directions", id)
}
