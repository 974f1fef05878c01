package service

import (
	"context"

	"github.com/MKhiriev/go-sql-trainer/internal/logger"
	"github.com/MKhiriev/go-sql-trainer/internal/store"
)

type healthService struct {
	checker store.HealthChecker
	logger  *logger.Logger
}

func NewHealthService(checker store.HealthChecker, logger *logger.Logger) HealthService {
	return &healthService{checker: checker, logger: logger}
}

// Check returns store.ErrDatabaseUnavailable (wrapped) when the database
// cannot be reached.
func (h *healthService) Check(ctx context.Context) error {
	if err := h.checker.HealthCheck(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Msg("health check failed")
		return err
	}
	return nil
}
