// Package config provides configuration management for the ideaboard client
// core. Configuration is loaded from environment variables with an optional
// YAML overlay file, validated, and hot-reloadable in development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// Config is the full client-core configuration.
type Config struct {
	Environment Environment `yaml:"environment" validate:"required,oneof=development production"`

	API        APIConfig        `yaml:"api" validate:"required"`
	Auth       AuthConfig       `yaml:"auth" validate:"required"`
	Pagination PaginationConfig `yaml:"pagination"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// APIConfig configures the remote gateway.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" validate:"required"`
}

// AuthConfig configures the PKCE authorization flow.
type AuthConfig struct {
	AuthorizeURL string `yaml:"authorize_url" validate:"required,url"`
	TokenURL     string `yaml:"token_url" validate:"required,url"`
	ClientID     string `yaml:"client_id" validate:"required"`
	RedirectURI  string `yaml:"redirect_uri" validate:"required,uri"`
}

// PaginationConfig configures list fetching.
type PaginationConfig struct {
	PageSize int `yaml:"page_size" validate:"min=1,max=100"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// DefaultConfig returns the configuration defaults for local development.
func DefaultConfig() Config {
	return Config{
		Environment: Development,
		API: APIConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 15 * time.Second,
		},
		Auth: AuthConfig{
			AuthorizeURL: "http://localhost:8081/oauth/authorize",
			TokenURL:     "http://localhost:8081/oauth/token",
			ClientID:     "ideaboard-dev",
			RedirectURI:  "ideaboard://auth/callback",
		},
		Pagination: PaginationConfig{PageSize: 20},
		Logging:    LoggingConfig{Level: "debug"},
	}
}

// LoadConfig loads configuration in layered order: defaults, then the YAML
// file named by IDEABOARD_CONFIG_FILE (if any), then environment variables.
// Later layers win.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("IDEABOARD_CONFIG_FILE"); path != "" {
		if err := loadYAMLFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadYAMLFile overlays values from a YAML file onto cfg.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides applies environment variables, the highest priority layer.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("IDEABOARD_ENV"); v != "" {
		cfg.Environment = Environment(v)
	}
	if v := os.Getenv("IDEABOARD_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("IDEABOARD_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.API.Timeout = d
		}
	}
	if v := os.Getenv("IDEABOARD_AUTH_AUTHORIZE_URL"); v != "" {
		cfg.Auth.AuthorizeURL = v
	}
	if v := os.Getenv("IDEABOARD_AUTH_TOKEN_URL"); v != "" {
		cfg.Auth.TokenURL = v
	}
	if v := os.Getenv("IDEABOARD_AUTH_CLIENT_ID"); v != "" {
		cfg.Auth.ClientID = v
	}
	if v := os.Getenv("IDEABOARD_AUTH_REDIRECT_URI"); v != "" {
		cfg.Auth.RedirectURI = v
	}
	if v := os.Getenv("IDEABOARD_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Pagination.PageSize = n
		}
	}
	if v := os.Getenv("IDEABOARD_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// IsDevelopment reports whether the development environment is active.
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}
