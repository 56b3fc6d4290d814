package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	appErrors "github.com/noah-isme/it-institute-cms/pkg/errors"
	"github.com/noah-isme/it-institute-cms/pkg/response"
)

const limiterIdleTTL = 15 * time.Minute

// RateLimit allows burst requests per client IP, refilled one token per
// interval. A non-positive burst disables limiting.
func RateLimit(burst int, interval time.Duration) gin.HandlerFunc {
	if burst <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if interval <= 0 {
		interval = time.Minute
	}
	store := &limiterStore{
		limiters: make(map[string]*limiterEntry),
		every:    rate.Every(interval / time.Duration(burst)),
		burst:    burst,
		now:      time.Now,
	}
	retryAfter := strconv.Itoa(int((interval / time.Duration(burst)).Seconds()) + 1)

	return func(c *gin.Context) {
		if !store.allow(c.ClientIP()) {
			c.Header("Retry-After", retryAfter)
			response.Abort(c, appErrors.Clone(appErrors.ErrRateLimited, "too many attempts, try again later"))
			return
		}
		c.Next()
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterStore struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	every     rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

func (s *limiterStore) allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) > limiterIdleTTL {
		for k, entry := range s.limiters {
			if now.Sub(entry.lastSeen) > limiterIdleTTL {
				delete(s.limiters, k)
			}
		}
		s.lastSweep = now
	}

	entry, ok := s.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(s.every, s.burst)}
		s.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}
