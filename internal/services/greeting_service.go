package services

import (
	"context"
	"fmt"
	"strings"
)

// DefaultGreetingName is used when no name is configured
const DefaultGreetingName = "World"

// greetingService implements the GreetingService interface
type greetingService struct {
	defaultName string
}

// NewGreetingService creates a new greeting service instance
func NewGreetingService(defaultName string) GreetingService {
	if strings.TrimSpace(defaultName) == "" {
		defaultName = DefaultGreetingName
	}
	return &greetingService{defaultName: defaultName}
}

// Greet builds the greeting message. Any non-blank name is echoed back trimmed.
func (s *greetingService) Greet(ctx context.Context, req *GreetRequest) (*Greeting, error) {
	name := ""
	if req != nil {
		name = strings.TrimSpace(req.Name)
	}

	if name == "" {
		name = s.defaultName
	}

	return &Greeting{Message: fmt.Sprintf("Hello, %s!", name)}, nil
}
