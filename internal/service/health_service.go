package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/it-institute-cms/internal/dto"
)

const healthProbeQuery = "SELECT 100 + 55"

type healthProber interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// HealthService probes database connectivity.
type HealthService struct {
	db      healthProber
	metrics *MetricsService
	timeout time.Duration
	logger  *zap.Logger
}

// NewHealthService constructs a HealthService.
func NewHealthService(db healthProber, metrics *MetricsService, logger *zap.Logger) *HealthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthService{db: db, metrics: metrics, timeout: 3 * time.Second, logger: logger}
}

// Check runs the arithmetic probe. Failures are reported in the payload and
// logged, never returned.
func (s *HealthService) Check(ctx context.Context) dto.HealthResponse {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	var result int
	err := s.db.GetContext(ctx, &result, healthProbeQuery)
	s.metrics.ObserveDBQuery("health_probe", time.Since(start))
	if err != nil {
		s.logger.Error("health probe failed", zap.Error(err))
		return dto.HealthResponse{DBStatus: false, Error: err.Error()}
	}
	return dto.HealthResponse{DBStatus: true, MathResult: &result}
}
