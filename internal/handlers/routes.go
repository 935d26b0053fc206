package handlers

import (
	"fmt"

	"hello-api/internal/router"
	"hello-api/internal/services"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	Prefix          string
	GreetingService services.GreetingService
	HealthService   services.HealthService
}

// SetupRoutes builds the route table for the API
func SetupRoutes(config *RouterConfig) (*router.Table, error) {
	if config == nil || config.GreetingService == nil || config.HealthService == nil {
		return nil, fmt.Errorf("router config requires greeting and health services")
	}

	helloHandler := NewHelloHandler(config.GreetingService)
	healthHandler := NewHealthHandler(config.HealthService)

	table := router.NewTable()
	api := table.Group(config.Prefix)

	if err := api.GET("/hello", helloHandler.Hello); err != nil {
		return nil, fmt.Errorf("failed to register hello route: %w", err)
	}
	if err := api.GET("/health", healthHandler.Health); err != nil {
		return nil, fmt.Errorf("failed to register health route: %w", err)
	}

	return table, nil
}
