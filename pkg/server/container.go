package server

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"hello-api/internal/config"
	"hello-api/internal/dispatcher"
	"hello-api/internal/handlers"
	"hello-api/internal/router"
	"hello-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          logrus.FieldLogger
	GreetingService services.GreetingService
	HealthService   services.HealthService
	Routes          *router.Table
	Dispatcher      *dispatcher.Dispatcher
}

// NewContainer creates a new dependency injection container. The route table is
// fully registered here, before any request is served.
func NewContainer(cfg *config.Config, logger logrus.FieldLogger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	serviceContainer := services.NewServiceContainer(&services.ServiceConfig{
		DefaultGreetingName: cfg.Greeting.DefaultName,
	})

	table, err := handlers.SetupRoutes(&handlers.RouterConfig{
		Prefix:          cfg.APIPrefix,
		GreetingService: serviceContainer.GreetingService,
		HealthService:   serviceContainer.HealthService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build route table: %w", err)
	}

	for _, route := range table.Routes() {
		logger.WithFields(logrus.Fields{
			"method": route.Method.String(),
			"route":  route.Template.String(),
		}).Debug("Registered route")
	}

	return &Container{
		Config:          cfg,
		Logger:          logger,
		GreetingService: serviceContainer.GreetingService,
		HealthService:   serviceContainer.HealthService,
		Routes:          table,
		Dispatcher:      dispatcher.New(table, logger),
	}, nil
}
