package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/it-institute-cms/internal/models"
)

const achievementColumns = `id, theme, title, description`

// AchievementRepository handles persistence for achievements.
type AchievementRepository struct {
	db *sqlx.DB
}

// NewAchievementRepository creates a new repository instance.
func NewAchievementRepository(db *sqlx.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// List returns all achievements ordered by id.
func (r *AchievementRepository) List(ctx context.Context) ([]models.Achievement, error) {
	achievements := []models.Achievement{}
	if err := r.db.SelectContext(ctx, &achievements, `SELECT `+achievementColumns+` FROM achievements ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	return achievements, nil
}

// FindByID returns an achievement by id.
func (r *AchievementRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Achievement, error) {
	var achievement models.Achievement
	if err := sqlx.GetContext(ctx, pick(r.db, exec), &achievement, `SELECT `+achievementColumns+` FROM achievements WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find achievement: %w", err)
	}
	return &achievement, nil
}

// ExistsByTitle checks uniqueness of the achievement title.
func (r *AchievementRepository) ExistsByTitle(ctx context.Context, exec sqlx.ExtContext, title string, excludeID int64) (bool, error) {
	return existsBy(ctx, pick(r.db, exec), "achievements", "title", title, excludeID)
}

// Create persists a new achievement and assigns its id.
func (r *AchievementRepository) Create(ctx context.Context, exec sqlx.ExtContext, a *models.Achievement) error {
	const query = `INSERT INTO achievements (theme, title, description) VALUES ($1, $2, $3) RETURNING id`
	if err := sqlx.GetContext(ctx, pick(r.db, exec), &a.ID, query, a.Theme, a.Title, a.Description); err != nil {
		return fmt.Errorf("create achievement: %w", err)
	}
	return nil
}

// Update overwrites every mutable column.
func (r *AchievementRepository) Update(ctx context.Context, exec sqlx.ExtContext, a *models.Achievement) error {
	const query = `UPDATE achievements SET theme = $2, title = $3, description = $4 WHERE id = $1`
	if _, err := pick(r.db, exec).ExecContext(ctx, query, a.ID, a.Theme, a.Title, a.Description); err != nil {
		return fmt.Errorf("update achievement: %w", err)
	}
	return nil
}

// Delete removes an achievement record.
func (r *AchievementRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	return deleteByID(ctx, pick(r.db, exec), "achievements", id)
}
