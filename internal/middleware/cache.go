package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type cacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// InvalidateCache drops cached entries matching pattern after every
// successful write on the group. Invalidation errors are logged by the cache
// service and do not affect the response.
func InvalidateCache(cache cacheInvalidator, pattern string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if cache == nil || !isWrite(c.Request.Method) || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		_ = cache.Invalidate(context.WithoutCancel(c.Request.Context()), pattern)
	}
}
