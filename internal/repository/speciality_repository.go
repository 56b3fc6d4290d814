package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/it-institute-cms/internal/models"
)

const specialityColumns = `id, name, qualification, term, direction, description`

// SpecialityRepository handles persistence for specialities.
type SpecialityRepository struct {
	db *sqlx.DB
}

// NewSpecialityRepository creates a new repository instance.
func NewSpecialityRepository(db *sqlx.DB) *SpecialityRepository {
	return &SpecialityRepository{db: db}
}

// List returns all specialities ordered by id.
func (r *SpecialityRepository) List(ctx context.Context) ([]models.Speciality, error) {
	specialities := []models.Speciality{}
	if err := r.db.SelectContext(ctx, &specialities, `SELECT `+specialityColumns+` FROM specialities ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list specialities: %w", err)
	}
	return specialities, nil
}

// FindByID returns a speciality by id.
func (r *SpecialityRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Speciality, error) {
	var speciality models.Speciality
	if err := sqlx.GetContext(ctx, pick(r.db, exec), &speciality, `SELECT `+specialityColumns+` FROM specialities WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find speciality: %w", err)
	}
	return &speciality, nil
}

// ExistsByName checks uniqueness of the speciality name.
func (r *SpecialityRepository) ExistsByName(ctx context.Context, exec sqlx.ExtContext, name string, excludeID int64) (bool, error) {
	return existsBy(ctx, pick(r.db, exec), "specialities", "name", name, excludeID)
}

// Create persists a new speciality and assigns its id.
func (r *SpecialityRepository) Create(ctx context.Context, exec sqlx.ExtContext, s *models.Speciality) error {
	const query = `INSERT INTO specialities (name, qualification, term, direction, description) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := sqlx.GetContext(ctx, pick(r.db, exec), &s.ID, query, s.Name, s.Qualification, s.Term, s.Direction, s.Description); err != nil {
		return fmt.Errorf("create speciality: %w", err)
	}
	return nil
}

// Update overwrites every mutable column.
func (r *SpecialityRepository) Update(ctx context.Context, exec sqlx.ExtContext, s *models.Speciality) error {
	const query = `UPDATE specialities SET name = $2, qualification = $3, term = $4, direction = $5, description = $6 WHERE id = $1`
	if _, err := pick(r.db, exec).ExecContext(ctx, query, s.ID, s.Name, s.Qualification, s.Term, s.Direction, s.Description); err != nil {
		return fmt.Errorf("update speciality: %w", err)
	}
	return nil
}

// Delete removes a speciality record.
func (r *SpecialityRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	return deleteByID(ctx, pick(r.db, exec), "specialities", id)
}
