package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/it-institute-cms/internal/dto"
	"github.com/noah-isme/it-institute-cms/internal/models"
	"github.com/noah-isme/it-institute-cms/pkg/response"
)

type specialityService interface {
	Create(ctx context.Context, req dto.CreateSpecialityRequest) (*models.Speciality, error)
	Update(ctx context.Context, id int64, req dto.UpdateSpecialityRequest) (*models.Speciality, error)
	Delete(ctx context.Context, id int64) (*models.Speciality, error)
}

// SpecialityHandler exposes speciality writes under /admin/cms.
type SpecialityHandler struct {
	service specialityService
}

// NewSpecialityHandler constructs a speciality handler.
func NewSpecialityHandler(svc specialityService) *SpecialityHandler {
	return &SpecialityHandler{service: svc}
}

// Create godoc
// @Summary Create speciality
// @Tags Specialities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateSpecialityRequest true "Speciality payload"
// @Success 201 {object} models.Speciality
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /admin/cms/speciality [post]
func (h *SpecialityHandler) Create(c *gin.Context) {
	var req dto.CreateSpecialityRequest
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
// @Summary Update speciality
// @Tags Specialities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Speciality ID"
// @Param payload body dto.UpdateSpecialityRequest true "Fields to change"
// @Success 200 {object} models.Speciality
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /admin/cms/speciality/{id} [put]
func (h *SpecialityHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateSpecialityRequest
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
// @Summary Delete speciality
// @Tags Specialities
// @Produce json
// @Security BearerAuth
// @Param id path int true "Speciality ID"
// @Success 200 {object} models.Speciality
// @Failure 404 {object} response.ErrorBody
// @Router /admin/cms/speciality/{id} [delete]
func (h *SpecialityHandler) Delete(c *gin.Context) {
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
