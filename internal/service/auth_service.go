package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/it-institute-cms/internal/auth"
	"github.com/noah-isme/it-institute-cms/internal/dto"
	"github.com/noah-isme/it-institute-cms/internal/models"
	appErrors "github.com/noah-isme/it-institute-cms/pkg/errors"
)

const truncationWarning = "password was longer than 72 bytes and has been truncated before hashing"

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.User, error)
}

type tokenIssuer interface {
	Issue(userID int64, email string) (string, error)
	IssueWithTTL(userID int64, email string, ttl time.Duration) (string, error)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	SessionTTL time.Duration
}

// AuthService provides authentication use cases.
type AuthService struct {
	repo      authUserRepository
	tokens    tokenIssuer
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, tokens tokenIssuer, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	validate, logger = defaults(validate, logger)
	if config.SessionTTL <= 0 {
		config.SessionTTL = 8 * time.Hour
	}
	return &AuthService{repo: repo, tokens: tokens, validator: validate, logger: logger, config: config}
}

// Login authenticates a user and returns a bearer token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid login payload")
	}

	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}
	s.logger.Info("user logged in", zap.Int64("user_id", user.ID))
	return &models.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// AdminLogin authenticates a panel operator and returns a session token with
// its lifetime.
func (s *AuthService) AdminLogin(ctx context.Context, req dto.AdminLoginRequest) (string, time.Duration, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := s.validator.Struct(req); err != nil {
		return "", 0, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	user, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return "", 0, err
	}

	token, err := s.tokens.IssueWithTTL(user.ID, user.Email, s.config.SessionTTL)
	if err != nil {
		return "", 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}
	s.logger.Info("admin panel login", zap.Int64("user_id", user.ID))
	return token, s.config.SessionTTL, nil
}

// Me returns the profile of the authenticated user.
func (s *AuthService) Me(ctx context.Context, userID int64) (*models.UserInfo, error) {
	user, err := s.repo.FindByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return &models.UserInfo{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

// HashPassword produces a hash an operator can insert into the users table.
func (s *AuthService) HashPassword(req models.HashPasswordRequest) (*models.HashPasswordResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid password")
	}

	hash, truncated, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	resp := &models.HashPasswordResponse{OriginalPassword: req.Password, HashedPassword: hash}
	if truncated {
		warning := truncationWarning
		resp.Warning = &warning
		s.logger.Warn("password truncated before hashing")
	}
	return resp, nil
}

// authenticate returns the same error for an unknown email and a wrong
// password, and spends a bcrypt comparison in both cases.
func (s *AuthService) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			auth.VerifyPassword(password, fallbackHash())
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if !auth.VerifyPassword(password, user.HashedPassword) {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}
	return user, nil
}

func fallbackHash() string {
	dummyHashOnce.Do(func() {
		dummyHash, _, _ = auth.HashPassword("not-a-real-password")
	})
	return dummyHash
}
