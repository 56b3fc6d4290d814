package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/it-institute-cms/internal/models"
)

const userColumns = `id, name, email, hashed_password`

// UserRepository provides database access for operator accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email = $1 LIMIT 1`, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.User, error) {
	var user models.User
	if err := sqlx.GetContext(ctx, pick(r.db, exec), &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// List returns all users ordered by id.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ExistsByEmail checks uniqueness of the login email.
func (r *UserRepository) ExistsByEmail(ctx context.Context, exec sqlx.ExtContext, email string, excludeID int64) (bool, error) {
	return existsBy(ctx, pick(r.db, exec), "users", "email", email, excludeID)
}

// Create persists a new user and assigns its id.
func (r *UserRepository) Create(ctx context.Context, exec sqlx.ExtContext, user *models.User) error {
	const query = `INSERT INTO users (name, email, hashed_password) VALUES ($1, $2, $3) RETURNING id`
	if err := sqlx.GetContext(ctx, pick(r.db, exec), &user.ID, query, user.Name, user.Email, user.HashedPassword); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update writes name, email and password hash.
func (r *UserRepository) Update(ctx context.Context, exec sqlx.ExtContext, user *models.User) error {
	const query = `UPDATE users SET name = $2, email = $3, hashed_password = $4 WHERE id = $1`
	if _, err := pick(r.db, exec).ExecContext(ctx, query, user.ID, user.Name, user.Email, user.HashedPassword); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete removes a user record.
func (r *UserRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	return deleteByID(ctx, pick(r.db, exec), "users", id)
}
