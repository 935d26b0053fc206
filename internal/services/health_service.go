package services

import "context"

type healthService struct{}

// NewHealthService creates a new health service instance
func NewHealthService() HealthService {
	return &healthService{}
}

// Check reports liveness. The service has no dependencies to probe.
func (s *healthService) Check(ctx context.Context) (*HealthStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &HealthStatus{Status: HealthStatusOK}, nil
}
