package services

// ServiceContainer holds all service instances
type ServiceContainer struct {
	GreetingService GreetingService
	HealthService   HealthService
}

// ServiceConfig holds configuration for services
type ServiceConfig struct {
	DefaultGreetingName string
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(config *ServiceConfig) *ServiceContainer {
	if config == nil {
		config = &ServiceConfig{DefaultGreetingName: DefaultGreetingName}
	}

	return &ServiceContainer{
		GreetingService: NewGreetingService(config.DefaultGreetingName),
		HealthService:   NewHealthService(),
	}
}
