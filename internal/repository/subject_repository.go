package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/it-institute-cms/internal/models"
)

const subjectColumns = `id, name, description, svg_code`

// SubjectRepository handles persistence for subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new repository instance.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns all subjects ordered by id.
func (r *SubjectRepository) List(ctx context.Context) ([]models.Subject, error) {
	subjects := []models.Subject{}
	if err := r.db.SelectContext(ctx, &subjects, `SELECT `+subjectColumns+` FROM subjects ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindByID returns a subject by id.
func (r *SubjectRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Subject, error) {
	var subject models.Subject
	if err := sqlx.GetContext(ctx, pick(r.db, exec), &subject, `SELECT `+subjectColumns+` FROM subjects WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find subject: %w", err)
	}
	return &subject, nil
}

// ExistsByName checks uniqueness of the subject name.
func (r *SubjectRepository) ExistsByName(ctx context.Context, exec sqlx.ExtContext, name string, excludeID int64) (bool, error) {
	return existsBy(ctx, pick(r.db, exec), "subjects", "name", name, excludeID)
}

// Create persists a new subject and assigns its id.
func (r *SubjectRepository) Create(ctx context.Context, exec sqlx.ExtContext, subject *models.Subject) error {
	const query = `INSERT INTO subjects (name, description, svg_code) VALUES ($1, $2, $3) RETURNING id`
	if err := sqlx.GetContext(ctx, pick(r.db, exec), &subject.ID, query, subject.Name, subject.Description, subject.Icon); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// Update overwrites every mutable column.
func (r *SubjectRepository) Update(ctx context.Context, exec sqlx.ExtContext, subject *models.Subject) error {
	const query = `UPDATE subjects SET name = $2, description = $3, svg_code = $4 WHERE id = $1`
	if _, err := pick(r.db, exec).ExecContext(ctx, query, subject.ID, subject.Name, subject.Description, subject.Icon); err != nil {
		return fmt.Errorf("update subject: %w", err)
	}
	return nil
}

// Delete removes a subject record.
func (r *SubjectRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	return deleteByID(ctx, pick(r.db, exec), "subjects", id)
}
