package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/it-institute-cms/internal/auth"
	"github.com/noah-isme/it-institute-cms/internal/dto"
	"github.com/noah-isme/it-institute-cms/internal/models"
	appErrors "github.com/noah-isme/it-institute-cms/pkg/errors"
)

type stubTokens struct {
	lastTTL time.Duration
	err     error
}

func (s *stubTokens) Issue(userID int64, email string) (string, error) {
	return s.IssueWithTTL(userID, email, 0)
}

func (s *stubTokens) IssueWithTTL(userID int64, email string, ttl time.Duration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.lastTTL = ttl
	return "token-for-" + email, nil
}

func newAuthServiceForTest(t *testing.T) (*AuthService, *stubTokens) {
	t.Helper()
	hash, _, err := auth.HashPassword("password123")
	require.NoError(t, err)
	repo := newMockUserRepo(models.User{ID: 7, Name: "Admin", Email: "admin@example.com", HashedPassword: hash})
	tokens := &stubTokens{}
	return NewAuthService(repo, tokens, nil, zap.NewNop(), AuthConfig{SessionTTL: time.Hour}), tokens
}

func TestAuthServiceLogin(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "token-for-admin@example.com", resp.AccessToken)
}

func TestAuthServiceLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	_, unknownErr := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	_, wrongErr := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "password999"})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	unknown := appErrors.FromError(unknownErr)
	wrong := appErrors.FromError(wrongErr)
	assert.Equal(t, 401, unknown.Status)
	assert.Equal(t, unknown.Code, wrong.Code)
	assert.Equal(t, unknown.Message, wrong.Message)
}

func TestAuthServiceLoginTokenFailure(t *testing.T) {
	svc, tokens := newAuthServiceForTest(t)
	tokens.err = errors.New("signing failed")

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "password123"})
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}

func TestAuthServiceAdminLoginUsesSessionTTL(t *testing.T) {
	svc, tokens := newAuthServiceForTest(t)

	token, ttl, err := svc.AdminLogin(context.Background(), dto.AdminLoginRequest{Username: "admin@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, time.Hour, ttl)
	assert.Equal(t, time.Hour, tokens.lastTTL)

	_, _, err = svc.AdminLogin(context.Background(), dto.AdminLoginRequest{Username: "not-an-email", Password: "x"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestAuthServiceMe(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	info, err := svc.Me(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Admin", info.Name)

	_, err = svc.Me(context.Background(), 99)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestAuthServiceHashPassword(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	resp, err := svc.HashPassword(models.HashPasswordRequest{Password: "short-enough"})
	require.NoError(t, err)
	assert.Nil(t, resp.Warning)
	assert.True(t, auth.VerifyPassword("short-enough", resp.HashedPassword))

	long := strings.Repeat("x", 80)
	resp, err = svc.HashPassword(models.HashPasswordRequest{Password: long})
	require.NoError(t, err)
	require.NotNil(t, resp.Warning)
	assert.Equal(t, long, resp.OriginalPassword)

	_, err = svc.HashPassword(models.HashPasswordRequest{Password: "abc"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
