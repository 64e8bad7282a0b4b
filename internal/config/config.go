// Package config reads the service configuration from the environment. A
// .env file in the working directory is honored if present. The process must
// fail fast when the database connection string is missing.
package config

import (
	"fmt"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all externally supplied settings of the service.
type Config struct {
	RunAddr     string `env:"SERVER_ADDRESS" envDefault:":8080" validate:"hostname_port"`
	DatabaseDSN string `env:"DATABASE_DSN" validate:"required"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"loglevel"`
	GinLogging  string `env:"GIN_LOGGING" envDefault:"on"`
}

// validateLogLevel accepts the level names understood by the zap logger.
func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	allowedLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}
	return allowedLogLevels[fieldLevel.Field().String()]
}

// validate checks the parsed configuration for completeness and consistency.
func validate(cfg *Config) error {
	v := validator.New()
	if err := v.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return err
	}
	return v.Struct(cfg)
}

// Init loads the configuration from a .env file (if any) and the process
// environment and validates it. A missing DATABASE_DSN is an error so that
// the service refuses to start without a database.
func Init() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
