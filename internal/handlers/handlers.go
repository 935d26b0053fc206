package handlers

import (
	"context"
	"fmt"
	"net/http"

	"hello-api/internal/models"
	"hello-api/internal/services"
)

// HelloHandler handles greeting requests
type HelloHandler struct {
	greetingService services.GreetingService
}

// NewHelloHandler creates a new hello handler
func NewHelloHandler(greetingService services.GreetingService) *HelloHandler {
	return &HelloHandler{greetingService: greetingService}
}

// Hello returns a greeting, personalised by the optional name query parameter.
//
//	GET /api/hello?name=Ada -> 200 {"message":"Hello, Ada!"}
func (h *HelloHandler) Hello(ctx context.Context, req *models.Request, params models.Params) (*models.Response, error) {
	greeting, err := h.greetingService.Greet(ctx, &services.GreetRequest{Name: req.Query("name")})
	if err != nil {
		return nil, fmt.Errorf("failed to build greeting: %w", err)
	}

	return models.JSON(http.StatusOK, greeting)
}

// HealthHandler handles liveness checks
type HealthHandler struct {
	healthService services.HealthService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(healthService services.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// Health returns a fixed liveness payload.
//
//	GET /api/health -> 200 {"status":"ok"}
func (h *HealthHandler) Health(ctx context.Context, req *models.Request, params models.Params) (*models.Response, error) {
	status, err := h.healthService.Check(ctx)
	if err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}

	return models.JSON(http.StatusOK, status)
}
