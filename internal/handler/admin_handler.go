package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/it-institute-cms/internal/admin"
	"github.com/noah-isme/it-institute-cms/internal/dto"
	"github.com/noah-isme/it-institute-cms/internal/middleware"
	"github.com/noah-isme/it-institute-cms/internal/models"
	"github.com/noah-isme/it-institute-cms/internal/service"
	appErrors "github.com/noah-isme/it-institute-cms/pkg/errors"
	"github.com/noah-isme/it-institute-cms/pkg/response"
)

type panelAuth interface {
	AdminLogin(ctx context.Context, req dto.AdminLoginRequest) (string, time.Duration, error)
	Me(ctx context.Context, userID int64) (*models.UserInfo, error)
}

type panelService interface {
	Models() []admin.ModelView
	Rows(ctx context.Context, identity string, query service.RowsQuery) (*dto.AdminModelRows, error)
	CreateTeacher(ctx context.Context, form dto.AdminTeacherForm, photo *service.UploadInput) (*models.Teacher, error)
	UpdateTeacher(ctx context.Context, id int64, form dto.AdminTeacherForm, photo *service.UploadInput) (*models.Teacher, error)
}

type panelUsers interface {
	Create(ctx context.Context, form dto.AdminUserForm) (*models.UserInfo, error)
	Update(ctx context.Context, id int64, form dto.AdminUserForm) (*models.UserInfo, error)
	Delete(ctx context.Context, id int64) (*models.UserInfo, error)
}

type auditReader interface {
	Recent(ctx context.Context, limit int) ([]models.AuditLog, error)
}

// SessionCookie describes the admin panel session cookie.
type SessionCookie struct {
	Name   string
	Secure bool
}

// AdminHandler serves the cookie-authenticated admin panel API.
type AdminHandler struct {
	auth     panelAuth
	panel    panelService
	users    panelUsers
	audit    auditReader
	cookie   SessionCookie
	maxBytes int64
}

// NewAdminHandler constructs an admin panel handler.
func NewAdminHandler(auth panelAuth, panel panelService, users panelUsers, audit auditReader, cookie SessionCookie, maxUploadBytes int64) *AdminHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = service.DefaultMaxUploadBytes
	}
	return &AdminHandler{auth: auth, panel: panel, users: users, audit: audit, cookie: cookie, maxBytes: maxUploadBytes}
}

// Login godoc
// @Summary Admin panel login
// @Description Sets an HttpOnly session cookie on success
// @Tags Admin panel
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} response.ErrorBody
// @Failure 429 {object} response.ErrorBody
// @Router /admin/panel/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInvalidCredentials, ""))
		return
	}

	token, ttl, err := h.auth.AdminLogin(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.setSession(c, token, int(ttl.Seconds()))
	response.OK(c, gin.H{"authenticated": true})
}

// Logout godoc
// @Summary Admin panel logout
// @Tags Admin panel
// @Success 204
// @Router /admin/panel/logout [post]
func (h *AdminHandler) Logout(c *gin.Context) {
	h.setSession(c, "", -1)
	response.NoContent(c)
}

// Session godoc
// @Summary Current panel operator
// @Tags Admin panel
// @Produce json
// @Success 200 {object} models.UserInfo
// @Failure 401 {object} response.ErrorBody
// @Router /admin/panel/session [get]
func (h *AdminHandler) Session(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

// CSRFToken godoc
// @Summary CSRF token for panel writes
// @Description Send the token back in the X-CSRF-Token header
// @Tags Admin panel
// @Produce json
// @Success 200 {object} map[string]string
// @Router /admin/panel/csrf [get]
func (h *AdminHandler) CSRFToken(c *gin.Context) {
	response.OK(c, gin.H{"csrf_token": middleware.CSRFToken(c)})
}

// Models godoc
// @Summary Registered panel models
// @Tags Admin panel
// @Produce json
// @Success 200 {array} admin.ModelView
// @Router /admin/panel/models [get]
func (h *AdminHandler) Models(c *gin.Context) {
	response.OK(c, h.panel.Models())
}

// ModelRows godoc
// @Summary List one panel model
// @Tags Admin panel
// @Produce json
// @Param model path string true "Model identity"
// @Param q query string false "Search on searchable fields"
// @Param sort query string false "Sortable field"
// @Param order query string false "asc or desc"
// @Success 200 {object} dto.AdminModelRows
// @Failure 404 {object} response.ErrorBody
// @Router /admin/panel/models/{model} [get]
func (h *AdminHandler) ModelRows(c *gin.Context) {
	query := service.RowsQuery{
		Search: c.Query("q"),
		Sort:   c.Query("sort"),
		Desc:   strings.EqualFold(c.Query("order"), "desc"),
	}
	rows, err := h.panel.Rows(c.Request.Context(), c.Param("model"), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

// CreateUser godoc
// @Summary Create panel operator
// @Tags Admin panel
// @Accept x-www-form-urlencoded
// @Produce json
// @Param name formData string true "Name"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 201 {object} models.UserInfo
// @Failure 400 {object} response.ErrorBody
// @Router /admin/panel/users [post]
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var form dto.AdminUserForm
	if !bindForm(c, &form) {
		return
	}
	user, err := h.users.Create(c.Request.Context(), form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

// UpdateUser godoc
// @Summary Update panel operator
// @Description An empty password keeps the current one
// @Tags Admin panel
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.UserInfo
// @Router /admin/panel/users/{id} [put]
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var form dto.AdminUserForm
	if !bindForm(c, &form) {
		return
	}
	user, err := h.users.Update(c.Request.Context(), id, form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

// DeleteUser godoc
// @Summary Delete panel operator
// @Tags Admin panel
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.UserInfo
// @Router /admin/panel/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if current, ok := middleware.CurrentUserID(c); ok && current == id {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "you cannot delete your own account"))
		return
	}
	user, err := h.users.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

// CreateTeacher godoc
// @Summary Create teacher from the panel form
// @Tags Admin panel
// @Accept multipart/form-data
// @Produce json
// @Param fio formData string true "Full name"
// @Param post formData string true "Position"
// @Param subjects formData string true "Comma separated subjects"
// @Param image_url formData file true "Photo"
// @Success 201 {object} models.Teacher
// @Failure 400 {object} response.ErrorBody
// @Router /admin/panel/teachers [post]
func (h *AdminHandler) CreateTeacher(c *gin.Context) {
	photo, err := readUpload(c, "image_url", h.maxBytes)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeBody(photo)

	var form dto.AdminTeacherForm
	if !bindForm(c, &form) {
		return
	}
	teacher, err := h.panel.CreateTeacher(c.Request.Context(), form, photo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, teacher)
}

// UpdateTeacher godoc
// @Summary Update teacher from the panel form
// @Description Blank fields and a missing photo leave the stored values unchanged
// @Tags Admin panel
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} models.Teacher
// @Router /admin/panel/teachers/{id} [put]
func (h *AdminHandler) UpdateTeacher(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	photo, err := readUpload(c, "image_url", h.maxBytes)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeBody(photo)

	var form dto.AdminTeacherForm
	if !bindForm(c, &form) {
		return
	}
	teacher, err := h.panel.UpdateTeacher(c.Request.Context(), id, form, photo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, teacher)
}

// AuditLog godoc
// @Summary Recent CMS writes
// @Tags Admin panel
// @Produce json
// @Param limit query int false "Max entries (default 100)"
// @Success 200 {array} models.AuditLog
// @Router /admin/panel/audit [get]
func (h *AdminHandler) AuditLog(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := h.audit.Recent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}

func (h *AdminHandler) setSession(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, maxAge, "/", "", h.cookie.Secure, true)
}
