package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/it-institute-cms/internal/dto"
	"github.com/noah-isme/it-institute-cms/internal/models"
	"github.com/noah-isme/it-institute-cms/pkg/response"
)

type achievementService interface {
	Create(ctx context.Context, req dto.CreateAchievementRequest) (*models.Achievement, error)
	Update(ctx context.Context, id int64, req dto.UpdateAchievementRequest) (*models.Achievement, error)
	Delete(ctx context.Context, id int64) (*models.Achievement, error)
}

// AchievementHandler exposes achievement writes under /admin/cms.
type AchievementHandler struct {
	service achievementService
}

// NewAchievementHandler constructs a achievement handler.
func NewAchievementHandler(svc achievementService) *AchievementHandler {
	return &AchievementHandler{service: svc}
}

// Create godoc
// @Summary Create achievement
// @Tags Achievements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateAchievementRequest true "Achievement payload"
// @Success 201 {object} models.Achievement
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /admin/cms/achievements [post]
func (h *AchievementHandler) Create(c *gin.Context) {
	var req dto.CreateAchievementRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update godoc
// @Summary Update achievement
// @Tags Achievements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Achievement ID"
// @Param payload body dto.UpdateAchievementRequest true "Fields to change"
// @Success 200 {object} models.Achievement
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /admin/cms/achievements/{id} [put]
func (h *AchievementHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateAchievementRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, updated)
}

// Delete godoc
// @Summary Delete achievement
// @Tags Achievements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Achievement ID"
// @Success 200 {object} models.Achievement
// @Failure 404 {object} response.ErrorBody
// @Router /admin/cms/achievements/{id} [delete]
func (h *AchievementHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, deleted)
}
