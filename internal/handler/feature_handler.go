package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/it-institute-cms/internal/dto"
	"github.com/noah-isme/it-institute-cms/internal/models"
	"github.com/noah-isme/it-institute-cms/pkg/response"
)

type featureService interface {
	Create(ctx context.Context, req dto.CreateFeatureRequest) (*models.Feature, error)
	Update(ctx context.Context, id int64, req dto.UpdateFeatureRequest) (*models.Feature, error)
	Delete(ctx context.Context, id int64) (*models.Feature, error)
}

// FeatureHandler exposes feature writes under /admin/cms.
type FeatureHandler struct {
	service featureService
}

// NewFeatureHandler constructs a feature handler.
func NewFeatureHandler(svc featureService) *FeatureHandler {
	return &FeatureHandler{service: svc}
}

// Create godoc
// @Summary Create feature
// @Tags Features
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateFeatureRequest true "Feature payload"
// @Success 201 {object} models.Feature
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /admin/cms/feature [post]
func (h *FeatureHandler) Create(c *gin.Context) {
	var req dto.CreateFeatureRequest
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
// @Summary Update feature
// @Tags Features
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feature ID"
// @Param payload body dto.UpdateFeatureRequest true "Fields to change"
// @Success 200 {object} models.Feature
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /admin/cms/feature/{id} [put]
func (h *FeatureHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateFeatureRequest
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
// @Summary Delete feature
// @Tags Features
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feature ID"
// @Success 200 {object} models.Feature
// @Failure 404 {object} response.ErrorBody
// @Router /admin/cms/feature/{id} [delete]
func (h *FeatureHandler) Delete(c *gin.Context) {
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
