package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/it-institute-cms/internal/models"
)

const teacherColumns = `id, image_url, fio, post, subjects`

// TeacherRepository handles persistence for teacher profiles.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository creates a new repository instance.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns all teachers ordered by full name, then id.
func (r *TeacherRepository) List(ctx context.Context) ([]models.Teacher, error) {
	teachers := []models.Teacher{}
	if err := r.db.SelectContext(ctx, &teachers, `SELECT `+teacherColumns+` FROM teachers ORDER BY fio, id`); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// FindByID returns a teacher by id.
func (r *TeacherRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := sqlx.GetContext(ctx, pick(r.db, exec), &teacher, `SELECT `+teacherColumns+` FROM teachers WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find teacher: %w", err)
	}
	return &teacher, nil
}

// ExistsByFIO checks uniqueness of the teacher's full name.
func (r *TeacherRepository) ExistsByFIO(ctx context.Context, exec sqlx.ExtContext, fio string, excludeID int64) (bool, error) {
	return existsBy(ctx, pick(r.db, exec), "teachers", "fio", fio, excludeID)
}

// Create persists a new teacher and assigns its id.
func (r *TeacherRepository) Create(ctx context.Context, exec sqlx.ExtContext, t *models.Teacher) error {
	const query = `INSERT INTO teachers (image_url, fio, post, subjects) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := sqlx.GetContext(ctx, pick(r.db, exec), &t.ID, query, t.ImageURL, t.FIO, t.Post, t.Subjects); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// Update overwrites every mutable column.
func (r *TeacherRepository) Update(ctx context.Context, exec sqlx.ExtContext, t *models.Teacher) error {
	const query = `UPDATE teachers SET image_url = $2, fio = $3, post = $4, subjects = $5 WHERE id = $1`
	if _, err := pick(r.db, exec).ExecContext(ctx, query, t.ID, t.ImageURL, t.FIO, t.Post, t.Subjects); err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}
	return nil
}

// Delete removes a teacher record.
func (r *TeacherRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	return deleteByID(ctx, pick(r.db, exec), "teachers", id)
}
