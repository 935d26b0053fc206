package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"hello-api/internal/config"
	"hello-api/internal/logging"
	"hello-api/pkg/server"
)

func main() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := logging.New(cfg.Logging)

	// The route table is complete before the first invocation arrives
	container, err := server.NewContainer(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize container")
	}

	function := config.GetServerlessConfig()
	logger.WithFields(logrus.Fields{
		"function_name":   function.FunctionName,
		"version":         function.Version,
		"region":          function.Region,
		"deployment_mode": config.GetDeploymentMode(),
		"routes":          container.Routes.Len(),
	}).Info("Lambda handler initialized")

	awslambda.StartHandler(server.NewLambdaHandler(container.Dispatcher, logger, function))
}
