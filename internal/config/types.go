package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Core settings
	Environment string
	ServiceName string
	Version     string
	LogLevel    string
	LogJSON     bool

	// Component configurations
	Database DatabaseConfig
	Assets   AssetsConfig
	Webhook  WebhookConfig
	Archive  ArchiveConfig
	Events   EventsConfig
	HTTP     HTTPConfig
	Handler  HandlerConfig
	Lambda   LambdaConfig
}

// DatabaseConfig holds PostgreSQL connection configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	MaxOpenConns int
	MaxIdleConns int
}

// AssetsConfig holds the external asset host configuration.
// UploadURL and DeleteURL point at the host's signed-request endpoints.
type AssetsConfig struct {
	UploadURL string
	DeleteURL string
	APIKey    string
	APISecret string
	Folder    string
	Timeout   time.Duration
}

// WebhookConfig holds the downstream delivery-confirmation webhook.
// An empty URL means no webhook is configured and notification is skipped.
type WebhookConfig struct {
	URL     string
	Timeout time.Duration
}

// ArchiveConfig holds the S3 archive configuration for generated documents.
// An empty bucket disables archiving.
type ArchiveConfig struct {
	Bucket          string
	Prefix          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	MaxRetries      int
	Timeout         time.Duration
}

// EventsConfig holds the delivered-event queue configuration.
// An empty URL disables event publication.
type EventsConfig struct {
	URL      string
	Exchange string
	Queue    string
	Timeout  time.Duration
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Addr    string
	Timeout time.Duration
}

// HandlerConfig holds handler configuration
type HandlerConfig struct {
	Timeout        time.Duration
	MaxRequestSize int64
	EnableHealth   bool
}

// LambdaConfig holds Lambda-specific configuration
type LambdaConfig struct {
	Timeout time.Duration
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	var errors []string

	if c.ServiceName == "" {
		errors = append(errors, "SERVICE_NAME is required")
	}

	if c.IsProduction() {
		if c.Assets.UploadURL == "" {
			errors = append(errors, "ASSETS_UPLOAD_URL is required in production")
		}
		if c.Assets.APISecret == "" {
			errors = append(errors, "ASSETS_API_SECRET is required in production")
		}
		if c.Database.Password == "" {
			errors = append(errors, "DB_PASSWORD is required in production")
		}
	}

	if c.Assets.UploadURL != "" && c.Assets.APIKey == "" {
		errors = append(errors, "ASSETS_API_KEY is required when ASSETS_UPLOAD_URL is set")
	}
	if c.Assets.Timeout <= 0 {
		errors = append(errors, "ASSETS_TIMEOUT must be positive")
	}
	if c.Webhook.Timeout <= 0 {
		errors = append(errors, "WEBHOOK_TIMEOUT must be positive")
	}
	if c.HTTP.Timeout <= 0 {
		errors = append(errors, "HTTP_TIMEOUT must be positive")
	}
	if c.Handler.Timeout <= 0 {
		errors = append(errors, "HANDLER_TIMEOUT must be positive")
	}
	if c.Handler.MaxRequestSize <= 0 {
		errors = append(errors, "HANDLER_MAX_REQUEST_SIZE must be positive")
	}
	if c.Database.MaxOpenConns <= 0 {
		errors = append(errors, "DB_MAX_OPEN_CONNS must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// Environment detection methods

// IsLocal returns true if running in local/development environment
func (c *Config) IsLocal() bool {
	env := strings.ToLower(c.Environment)
	return env == "local" || env == "development" || env == "dev"
}

// IsStaging returns true if running in staging environment
func (c *Config) IsStaging() bool {
	env := strings.ToLower(c.Environment)
	return env == "staging" || env == "stage"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Environment)
	return env == "production" || env == "prod"
}

// IsTest returns true if running in test environment
func (c *Config) IsTest() bool {
	env := strings.ToLower(c.Environment)
	return env == "test" || env == "testing"
}
