package services

import (
	"context"
)

// GreetingService defines the interface for greeting operations
type GreetingService interface {
	// Greet returns a greeting for name, falling back to the default name when it is blank
	Greet(ctx context.Context, req *GreetRequest) (*Greeting, error)
}

// HealthService defines the interface for liveness checks
type HealthService interface {
	Check(ctx context.Context) (*HealthStatus, error)
}

// GreetRequest represents a request for a greeting
type GreetRequest struct {
	Name string `json:"name"`
}

// Greeting represents a greeting message
type Greeting struct {
	Message string `json:"message"`
}

// HealthStatus represents the liveness payload
type HealthStatus struct {
	Status string `json:"status"`
}

// HealthStatusOK is the only status reported while the process can serve requests
const HealthStatusOK = "ok"
