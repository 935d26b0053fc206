package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hello-api/internal/config"
	"hello-api/internal/logging"
	"hello-api/pkg/server"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := logging.New(cfg.Logging)

	// Initialize dependencies
	container, err := server.NewContainer(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize container")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := server.NewEngine(cfg, container.Dispatcher, logger)

	srv := &http.Server{
		Addr:    cfg.Address(),
		Handler: engine.Handler(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	logger.WithFields(logrus.Fields{
		"address":     cfg.Address(),
		"environment": cfg.Environment,
		"api_prefix":  cfg.APIPrefix,
		"routes":      container.Routes.Len(),
	}).Info("Server started")

	// SIGHUP rebuilds the route table from fresh configuration; SIGINT/SIGTERM shut down
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	for sig := range signals {
		if sig != syscall.SIGHUP {
			break
		}
		reloadRoutes(engine, logger)
	}

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited")
}

// reloadRoutes builds a new container and swaps its dispatcher into the engine.
// Middleware settings keep the values the process started with.
func reloadRoutes(engine *server.Engine, logger logrus.FieldLogger) {
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Error("Reload failed: invalid configuration")
		return
	}

	container, err := server.NewContainer(cfg, logger)
	if err != nil {
		logger.WithError(err).Error("Reload failed: could not build routes")
		return
	}

	engine.Reload(container.Dispatcher)
}
