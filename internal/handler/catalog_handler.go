package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/it-institute-cms/internal/dto"
	"github.com/noah-isme/it-institute-cms/internal/models"
	"github.com/noah-isme/it-institute-cms/pkg/response"
)

type catalogService interface {
	Achievements(ctx context.Context) ([]models.Achievement, error)
	Features(ctx context.Context) ([]models.Feature, error)
	Specialities(ctx context.Context) ([]models.Speciality, error)
	Subjects(ctx context.Context) ([]models.Subject, error)
	Teachers(ctx context.Context) ([]models.Teacher, error)
	DirectionsWithDisciplines(ctx context.Context) ([]models.DirectionWithDisciplines, error)
}

type planExporter interface {
	StudyPlan(ctx context.Context, directionID int64, format dto.ExportFormat) (*dto.ExportFile, error)
}

// CatalogHandler serves the public landing site lists.
type CatalogHandler struct {
	catalog catalogService
	exports planExporter
}

// NewCatalogHandler constructs a catalog handler.
func NewCatalogHandler(catalog catalogService, exports planExporter) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, exports: exports}
}

// Achievements godoc
// @Summary List achievements
// @Tags Public
// @Produce json
// @Success 200 {array} models.Achievement
// @Router /achievements [get]
func (h *CatalogHandler) Achievements(c *gin.Context) {
	respondList(c, h.catalog.Achievements)
}

// Features godoc
// @Summary List features
// @Tags Public
// @Produce json
// @Success 200 {array} models.Feature
// @Router /features [get]
func (h *CatalogHandler) Features(c *gin.Context) {
	respondList(c, h.catalog.Features)
}

// Specialities godoc
// @Summary List specialities
// @Tags Public
// @Produce json
// @Success 200 {array} models.Speciality
// @Router /speciality [get]
func (h *CatalogHandler) Specialities(c *gin.Context) {
	respondList(c, h.catalog.Specialities)
}

// Subjects godoc
// @Summary List subjects
// @Tags Public
// @Produce json
// @Success 200 {array} models.Subject
// @Router /subjects [get]
func (h *CatalogHandler) Subjects(c *gin.Context) {
	respondList(c, h.catalog.Subjects)
}

// Teachers godoc
// @Summary List teachers
// @Description Ordered by full name
// @Tags Public
// @Produce json
// @Success 200 {array} models.Teacher
// @Router /teachers [get]
func (h *CatalogHandler) Teachers(c *gin.Context) {
	respondList(c, h.catalog.Teachers)
}

// DirectionsWithDisciplines godoc
// @Summary List directions with their disciplines
// @Tags Public
// @Produce json
// @Success 200 {array} models.DirectionWithDisciplines
// @Router /directions-with-disciplines [get]
func (h *CatalogHandler) DirectionsWithDisciplines(c *gin.Context) {
	respondList(c, h.catalog.DirectionsWithDisciplines)
}

// StudyPlan godoc
// @Summary Export a direction study plan
// @Tags Public
// @Produce text/csv
// @Produce application/pdf
// @Param id path int true "Direction ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /directions/{id}/plan [get]
func (h *CatalogHandler) StudyPlan(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var query dto.PlanExportQuery
	if !bindForm(c, &query) {
		return
	}

	file, err := h.exports.StudyPlan(c.Request.Context(), id, query.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Header("Content-Length", strconv.Itoa(len(file.Content)))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

func respondList[T any](c *gin.Context, load func(context.Context) ([]T, error)) {
	items, err := load(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}
