package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/it-institute-cms/internal/dto"
	"github.com/noah-isme/it-institute-cms/internal/models"
	"github.com/noah-isme/it-institute-cms/pkg/response"
)

type directionService interface {
	Create(ctx context.Context, req dto.CreateDirectionRequest) (*models.Direction, error)
	Update(ctx context.Context, id int64, req dto.UpdateDirectionRequest) (*models.Direction, error)
	Delete(ctx context.Context, id int64) (*models.DirectionDeleteResult, error)
}

// DirectionHandler exposes direction writes under /admin/cms.
type DirectionHandler struct {
	service directionService
}

// NewDirectionHandler constructs a direction handler.
func NewDirectionHandler(svc directionService) *DirectionHandler {
	return &DirectionHandler{service: svc}
}

// Create godoc
// @Summary Create direction
// @Tags Study plan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateDirectionRequest true "Direction payload"
// @Success 201 {object} models.Direction
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /admin/cms/directions [post]
func (h *DirectionHandler) Create(c *gin.Context) {
	var req dto.CreateDirectionRequest
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
// @Summary Update direction
// @Tags Study plan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Direction ID"
// @Param payload body dto.UpdateDirectionRequest true "Fields to change"
// @Success 200 {object} models.Direction
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /admin/cms/directions/{id} [put]
func (h *DirectionHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateDirectionRequest
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
// @Summary Delete direction
// @Tags Study plan
// @Produce json
// @Security BearerAuth
// @Param id path int true "Direction ID"
// @Success 200 {object} models.DirectionDeleteResult
// @Failure 404 {object} response.ErrorBody
// @Router /admin/cms/directions/{id} [delete]
func (h *DirectionHandler) Delete(c *gin.Context) {
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
