package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/it-institute-cms/internal/dto"
)

type healthChecker interface {
	Check(ctx context.Context) dto.HealthResponse
}

// HealthHandler exposes observability endpoints.
type HealthHandler struct {
	health  healthChecker
	metrics http.Handler
}

// NewHealthHandler constructs a health handler. metrics may be nil.
func NewHealthHandler(health healthChecker, metrics http.Handler) *HealthHandler {
	return &HealthHandler{health: health, metrics: metrics}
}

// Health godoc
// @Summary Database health probe
// @Description Always 200; db_status reports whether the probe query succeeded
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /api/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.health.Check(c.Request.Context()))
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *HealthHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.ServeHTTP(c.Writer, c.Request)
}
