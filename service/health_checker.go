package service

import (
	"context"
	"log/slog"
	"time"

	"fan-pulse/repository"
)

// HealthCheckerService implementation.
type healthCheckerService struct {
	apiRepo      repository.ClassifierRepository
	logger       *slog.Logger
	pollInterval time.Duration
}

// NewHealthCheckerService creates a new health checker service.
func NewHealthCheckerService(apiRepo repository.ClassifierRepository, logger *slog.Logger) HealthCheckerService {
	return &healthCheckerService{
		apiRepo:      apiRepo,
		logger:       logger,
		pollInterval: 10 * time.Second,
	}
}

// CheckClassifierHealth checks if the hosted classifier model is reachable.
func (s *healthCheckerService) CheckClassifierHealth(ctx context.Context) error {
	s.logger.Debug("checking classifier health")

	if err := s.apiRepo.CheckHealth(ctx); err != nil {
		s.logger.Error("classifier not healthy", "error", err)
		return err
	}

	s.logger.Debug("classifier is healthy")

	return nil
}

// WaitForHealthy polls until the classifier is healthy or the context ends.
func (s *healthCheckerService) WaitForHealthy(ctx context.Context) error {
	if err := s.CheckClassifierHealth(ctx); err == nil {
		return nil
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Error("context canceled while waiting for classifier health")
			return ctx.Err()
		case <-ticker.C:
			if err := s.CheckClassifierHealth(ctx); err == nil {
				s.logger.Debug("classifier is now healthy")
				return nil
			}
		}
	}
}
