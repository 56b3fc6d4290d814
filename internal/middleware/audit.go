package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/it-institute-cms/internal/models"
)

type auditRecorder interface {
	Record(ctx context.Context, entry *models.AuditLog)
}

// Audit records every successful write on the group it is attached to.
func Audit(recorder auditRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if recorder == nil || !isWrite(c.Request.Method) || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		entry := &models.AuditLog{
			Action:    c.Request.Method,
			Resource:  resourceFromRoute(c.FullPath()),
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		if id, ok := CurrentUserID(c); ok {
			entry.UserID = &id
		}
		if id := c.Param("id"); id != "" {
			entry.ResourceID = &id
		}
		recorder.Record(context.WithoutCancel(c.Request.Context()), entry)
	}
}

// resourceFromRoute returns the last literal segment of a route template,
// e.g. "subject" for /admin/cms/subject/:id.
func resourceFromRoute(route string) string {
	segments := strings.Split(strings.Trim(route, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if s := segments[i]; s != "" && !strings.HasPrefix(s, ":") && !strings.HasPrefix(s, "*") {
			return s
		}
	}
	return route
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}
