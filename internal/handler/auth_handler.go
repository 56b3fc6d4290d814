package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/it-institute-cms/internal/middleware"
	"github.com/noah-isme/it-institute-cms/internal/models"
	appErrors "github.com/noah-isme/it-institute-cms/pkg/errors"
	"github.com/noah-isme/it-institute-cms/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error)
	Me(ctx context.Context, userID int64) (*models.UserInfo, error)
	HashPassword(req models.HashPasswordRequest) (*models.HashPasswordResponse, error)
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service authService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login godoc
// @Summary Authenticate user
// @Description Exchange email and password for a bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Failure 429 {object} response.ErrorBody
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// HashPassword godoc
// @Summary Hash a password
// @Description Produce a bcrypt hash for manual user insertion
// @Tags Authentication
// @Accept x-www-form-urlencoded
// @Produce json
// @Param password formData string true "Password (min 6)"
// @Success 200 {object} models.HashPasswordResponse
// @Failure 400 {object} response.ErrorBody
// @Router /api/auth/hash-password [post]
func (h *AuthHandler) HashPassword(c *gin.Context) {
	var req models.HashPasswordRequest
	if !bindForm(c, &req) {
		return
	}

	res, err := h.service.HashPassword(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// Me godoc
// @Summary Current user
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserInfo
// @Failure 401 {object} response.ErrorBody
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	user, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}
