package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/it-institute-cms/internal/models"
)

const disciplineColumns = `id, name, start_term, end_term, "group", direction_id`

// DisciplineRepository handles persistence for disciplines.
type DisciplineRepository struct {
	db *sqlx.DB
}

// NewDisciplineRepository creates a new repository instance.
func NewDisciplineRepository(db *sqlx.DB) *DisciplineRepository {
	return &DisciplineRepository{db: db}
}

// List returns all disciplines ordered by id.
func (r *DisciplineRepository) List(ctx context.Context) ([]models.Discipline, error) {
	disciplines := []models.Discipline{}
	if err := r.db.SelectContext(ctx, &disciplines, `SELECT `+disciplineColumns+` FROM disciplines ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list disciplines: %w", err)
	}
	return disciplines, nil
}

// ListByDirectionIDs loads the disciplines of several directions in one query,
// ordered by direction then id.
func (r *DisciplineRepository) ListByDirectionIDs(ctx context.Context, directionIDs []int64) ([]models.Discipline, error) {
	disciplines := []models.Discipline{}
	if len(directionIDs) == 0 {
		return disciplines, nil
	}
	const query = `SELECT ` + disciplineColumns + ` FROM disciplines WHERE direction_id = ANY($1) ORDER BY direction_id, id`
	if err := r.db.SelectContext(ctx, &disciplines, query, pq.Array(directionIDs)); err != nil {
		return nil, fmt.Errorf("list disciplines by direction: %w", err)
	}
	return disciplines, nil
}

// FindByID returns a discipline by id.
func (r *DisciplineRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Discipline, error) {
	var discipline models.Discipline
	if err := sqlx.GetContext(ctx, pick(r.db, exec), &discipline, `SELECT `+disciplineColumns+` FROM disciplines WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find discipline: %w", err)
	}
	return &discipline, nil
}

// ExistsByName checks uniqueness of the discipline name.
func (r *DisciplineRepository) ExistsByName(ctx context.Context, exec sqlx.ExtContext, name string, excludeID int64) (bool, error) {
	return existsBy(ctx, pick(r.db, exec), "disciplines", "name", name, excludeID)
}

// Create persists a new discipline and assigns its id.
func (r *DisciplineRepository) Create(ctx context.Context, exec sqlx.ExtContext, d *models.Discipline) error {
	const query = `INSERT INTO disciplines (name, start_term, end_term, "group", direction_id) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := sqlx.GetContext(ctx, pick(r.db, exec), &d.ID, query, d.Name, d.StartTerm, d.EndTerm, d.Group, d.DirectionID); err != nil {
		return fmt.Errorf("create discipline: %w", err)
	}
	return nil
}

// Update overwrites every mutable column.
func (r *DisciplineRepository) Update(ctx context.Context, exec sqlx.ExtContext, d *models.Discipline) error {
	const query = `UPDATE disciplines SET name = $2, start_term = $3, end_term = $4, "group" = $5, direction_id = $6 WHERE id = $1`
	if _, err := pick(r.db, exec).ExecContext(ctx, query, d.ID, d.Name, d.StartTerm, d.EndTerm, d.Group, d.DirectionID); err != nil {
		return fmt.Errorf("update discipline: %w", err)
	}
	return nil
}

// Delete removes a discipline record.
func (r *DisciplineRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	return deleteByID(ctx, pick(r.db, exec), "disciplines", id)
}
