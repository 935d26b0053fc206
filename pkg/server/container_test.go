package server

import (
	"testing"
	"time"

	"hello-api/internal/config"
	"hello-api/internal/logging"
	"hello-api/internal/models"
	"hello-api/internal/router"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:     "test",
		Host:            "127.0.0.1",
		Port:            "8000",
		APIPrefix:       "/api",
		ShutdownTimeout: 5 * time.Second,
		MaxBodyBytes:    1024,
		Logging:         config.LoggingConfig{Level: "info", Format: "json"},
		RateLimit:       config.RateLimitConfig{Burst: 1},
		CORS:            config.CORSConfig{AllowedOrigins: []string{"*"}},
		Greeting:        config.GreetingConfig{DefaultName: "World"},
	}
}

// TestNewContainer verifies that the container can be created successfully
func TestNewContainer(t *testing.T) {
	container, err := NewContainer(testConfig(), logging.Discard())
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	if container.GreetingService == nil {
		t.Error("GreetingService is nil")
	}
	if container.HealthService == nil {
		t.Error("HealthService is nil")
	}
	if container.Dispatcher == nil {
		t.Fatal("Dispatcher is nil")
	}
	if container.Dispatcher.Table() != container.Routes {
		t.Error("Expected the dispatcher to serve the container's route table")
	}
	if container.Routes.Len() != 2 {
		t.Errorf("Expected 2 routes, got %d", container.Routes.Len())
	}

	res := container.Routes.Resolve(models.MethodGet, "/api/hello")
	if res.Outcome != router.Matched {
		t.Errorf("Expected /api/hello to match, got %s", res.Outcome)
	}
}

// TestNewContainerPrefix verifies that the API prefix is applied to every route
func TestNewContainerPrefix(t *testing.T) {
	cfg := testConfig()
	cfg.APIPrefix = "/v2/"

	container, err := NewContainer(cfg, nil)
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	if res := container.Routes.Resolve(models.MethodGet, "/v2/health"); res.Outcome != router.Matched {
		t.Errorf("Expected /v2/health to match, got %s", res.Outcome)
	}
	if res := container.Routes.Resolve(models.MethodGet, "/api/health"); res.Outcome != router.NotFound {
		t.Errorf("Expected /api/health to be unknown, got %s", res.Outcome)
	}
}

// TestNewContainerRequiresConfig verifies that a nil configuration is rejected
func TestNewContainerRequiresConfig(t *testing.T) {
	if _, err := NewContainer(nil, nil); err == nil {
		t.Error("Expected an error for a nil configuration")
	}
}
