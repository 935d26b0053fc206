package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment     string        `validate:"required,oneof=development test staging production"`
	Host            string
	Port            string        `validate:"required,numeric"`
	APIPrefix       string        `validate:"required,startswith=/"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
	MaxBodyBytes    int64         `validate:"gt=0"`
	SlowRequest     time.Duration `validate:"gte=0"`
	Logging         LoggingConfig
	RateLimit       RateLimitConfig
	CORS            CORSConfig
	Greeting        GreetingConfig
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string `validate:"required,oneof=trace debug info warn warning error fatal panic"`
	Format string `validate:"required,oneof=json text"`
}

// RateLimitConfig holds rate limiter configuration. A zero rate disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `validate:"gte=0"`
	Burst             int     `validate:"gte=1"`
}

// Enabled reports whether requests should be rate limited
func (r RateLimitConfig) Enabled() bool {
	return r.RequestsPerSecond > 0
}

// CORSConfig holds cross-origin configuration
type CORSConfig struct {
	AllowedOrigins []string `validate:"required,min=1"`
}

// GreetingConfig holds configuration for the hello endpoint
type GreetingConfig struct {
	DefaultName string `validate:"required,max=100"`
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "8000")
	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("SHUTDOWN_TIMEOUT", "30s")
	v.SetDefault("MAX_BODY_BYTES", 6*1024*1024)
	v.SetDefault("SLOW_REQUEST_THRESHOLD", "1s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DEFAULT_GREETING_NAME", "World")

	config := &Config{
		Environment:     strings.ToLower(v.GetString("ENVIRONMENT")),
		Host:            v.GetString("HOST"),
		Port:            v.GetString("PORT"),
		APIPrefix:       v.GetString("API_PREFIX"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		MaxBodyBytes:    v.GetInt64("MAX_BODY_BYTES"),
		SlowRequest:     v.GetDuration("SLOW_REQUEST_THRESHOLD"),
		Logging: LoggingConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Greeting: GreetingConfig{
			DefaultName: v.GetString("DEFAULT_GREETING_NAME"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Address returns the host:port the HTTP server listens on
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvAsBool gets an environment variable as boolean with a fallback value
func GetEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
