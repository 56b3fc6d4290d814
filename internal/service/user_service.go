package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/it-institute-cms/internal/auth"
	"github.com/noah-isme/it-institute-cms/internal/dto"
	"github.com/noah-isme/it-institute-cms/internal/models"
	appErrors "github.com/noah-isme/it-institute-cms/pkg/errors"
)

type userRepository interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.User, error)
	ExistsByEmail(ctx context.Context, exec sqlx.ExtContext, email string, excludeID int64) (bool, error)
	Create(ctx context.Context, exec sqlx.ExtContext, user *models.User) error
	Update(ctx context.Context, exec sqlx.ExtContext, user *models.User) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error
}

// UserService manages CMS operators. It is reachable from the admin panel and
// the command line only.
type UserService struct {
	repo      userRepository
	tx        transactor
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService creates a new user service.
func NewUserService(repo userRepository, tx transactor, validate *validator.Validate, logger *zap.Logger) *UserService {
	validate, logger = defaults(validate, logger)
	return &UserService{repo: repo, tx: tx, validator: validate, logger: logger}
}

// List returns all operators.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, checkFailed(err, "failed to list users")
	}
	return users, nil
}

// Create adds an operator. The password is required and stored hashed.
func (s *UserService) Create(ctx context.Context, form dto.AdminUserForm) (*models.UserInfo, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	if err := s.validator.Struct(form); err != nil {
		return nil, validationError(err, "invalid user payload")
	}
	if form.Password == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid user payload: password is required")
	}

	hash, err := s.hash(form.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Name: form.Name, Email: form.Email, HashedPassword: hash}
	err = s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		exists, err := s.repo.ExistsByEmail(ctx, exec, user.Email, 0)
		if err != nil {
			return checkFailed(err, "failed to check user email")
		}
		if exists {
			return appErrors.Clone(appErrors.ErrConflict, "user with this email already exists")
		}
		return s.repo.Create(ctx, exec, user)
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not create user")
	}
	s.logger.Info("user created", zap.Int64("user_id", user.ID))
	return &models.UserInfo{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

// Update edits an operator. The stored hash is replaced only when a non-empty
// password is supplied.
func (s *UserService) Update(ctx context.Context, id int64, form dto.AdminUserForm) (*models.UserInfo, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	if err := s.validator.Struct(form); err != nil {
		return nil, validationError(err, "invalid user payload")
	}

	var newHash string
	if form.Password != "" {
		hash, err := s.hash(form.Password)
		if err != nil {
			return nil, err
		}
		newHash = hash
	}

	var user *models.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		current, err := s.repo.FindByID(ctx, exec, id)
		if err != nil {
			return lookupError(err, "user not found", "failed to load user")
		}
		exists, err := s.repo.ExistsByEmail(ctx, exec, form.Email, id)
		if err != nil {
			return checkFailed(err, "failed to check user email")
		}
		if exists {
			return appErrors.Clone(appErrors.ErrConflict, "user with this email already exists")
		}
		current.Name = form.Name
		current.Email = form.Email
		if newHash != "" {
			current.HashedPassword = newHash
		}
		if err := s.repo.Update(ctx, exec, current); err != nil {
			return err
		}
		user = current
		return nil
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not update user")
	}
	return &models.UserInfo{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

// Delete removes an operator.
func (s *UserService) Delete(ctx context.Context, id int64) (*models.UserInfo, error) {
	var user *models.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context, exec sqlx.ExtContext) error {
		current, err := s.repo.FindByID(ctx, exec, id)
		if err != nil {
			return lookupError(err, "user not found", "failed to load user")
		}
		if err := s.repo.Delete(ctx, exec, id); err != nil {
			return err
		}
		user = current
		return nil
	})
	if err != nil {
		return nil, storageError(s.logger, err, "could not delete user")
	}
	return &models.UserInfo{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

func (s *UserService) hash(password string) (string, error) {
	hash, truncated, err := auth.HashPassword(password)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	if truncated {
		s.logger.Warn("password truncated before hashing")
	}
	return hash, nil
}
