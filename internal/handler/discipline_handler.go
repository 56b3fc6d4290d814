package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/it-institute-cms/internal/dto"
	"github.com/noah-isme/it-institute-cms/internal/models"
	"github.com/noah-isme/it-institute-cms/pkg/response"
)

type disciplineService interface {
	Create(ctx context.Context, req dto.CreateDisciplineRequest) (*models.Discipline, error)
	Update(ctx context.Context, id int64, req dto.UpdateDisciplineRequest) (*models.Discipline, error)
	Delete(ctx context.Context, id int64) (*models.Discipline, error)
}

// DisciplineHandler exposes discipline writes under /admin/cms.
type DisciplineHandler struct {
	service disciplineService
}

// NewDisciplineHandler constructs a discipline handler.
func NewDisciplineHandler(svc disciplineService) *DisciplineHandler {
	return &DisciplineHandler{service: svc}
}

// Create godoc
// @Summary Create discipline
// @Tags Study plan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateDisciplineRequest true "Discipline payload"
// @Success 201 {object} models.Discipline
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /admin/cms/disciplines [post]
func (h *DisciplineHandler) Create(c *gin.Context) {
	var req dto.CreateDisciplineRequest
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
// @Summary Update discipline
// @Tags Study plan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Discipline ID"
// @Param payload body dto.UpdateDisciplineRequest true "Fields to change"
// @Success 200 {object} models.Discipline
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /admin/cms/disciplines/{id} [put]
func (h *DisciplineHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateDisciplineRequest
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
// @Summary Delete discipline
// @Tags Study plan
// @Produce json
// @Security BearerAuth
// @Param id path int true "Discipline ID"
// @Success 200 {object} models.Discipline
// @Failure 404 {object} response.ErrorBody
// @Router /admin/cms/disciplines/{id} [delete]
func (h *DisciplineHandler) Delete(c *gin.Context) {
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
