package config

import (
	"fmt"
	"regexp"

	"github.com/Netflix/go-env"
)

// Environment variables with defaults
type Environment struct {
	Environment string `env:"ENVIRONMENT,default=dev"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`

	// PolicyFile is an optional YAML file overriding the built-in allow-list, countries and messages
	PolicyFile string `env:"POLICY_FILE"`

	// APIVersion is carried into redirects to the wallet
	APIVersion string `env:"API_VERSION,default=0.3"`

	// MaxParameterSize limits the encoded size of the certificate and device_publickey parameters
	MaxParameterSize int64 `env:"MAX_PARAMETER_SIZE,default=65536"`
}

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"prod":    true,
	"staging": true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var apiVersionPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*$`)

// NewConfig loads environment variables and returns an Environment struct that contains the values
func NewConfig() (*Environment, error) {
	var cfg Environment

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validateConfig checks the values read from the environment
func validateConfig(cfg *Environment) error {
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid ENVIRONMENT: %s", cfg.Environment)
	}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("invalid LOG_LEVEL: %s (must be debug, info, warn or error)", cfg.LogLevel)
	}
	if !apiVersionPattern.MatchString(cfg.APIVersion) {
		return fmt.Errorf("invalid API_VERSION: %q", cfg.APIVersion)
	}
	if cfg.MaxParameterSize < 1024 {
		return fmt.Errorf("MAX_PARAMETER_SIZE must be at least 1024, got %d", cfg.MaxParameterSize)
	}
	return nil
}
