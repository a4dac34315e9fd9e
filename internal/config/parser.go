package config

// parse reads configuration from environment variables
func parse() (*Config, error) {
	cfg := &Config{
		// Core
		Environment: envString("ENVIRONMENT", "local"),
		ServiceName: envString("SERVICE_NAME", "audit-delivery"),
		Version:     envString("SERVICE_VERSION", "1.0.0"),
		LogLevel:    envString("LOG_LEVEL", "info"),
		LogJSON:     envBool("LOG_JSON", true),

		// Database Configuration
		Database: DatabaseConfig{
			Host:     envString("DB_HOST", "localhost"),
			Port:     envInt("DB_PORT", 5432),
			Database: envString("DB_NAME", "audits"),
			Username: envString("DB_USER", "postgres"),
			Password: envString("DB_PASSWORD", "postgres"),
			SSLMode:  envString("DB_SSL_MODE", "disable"),

			// Connection pool
			MaxOpenConns: envInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DB_MAX_IDLE_CONNS", 5),
		},

		// Asset host Configuration
		Assets: AssetsConfig{
			UploadURL: envString("ASSETS_UPLOAD_URL", ""),
			DeleteURL: envString("ASSETS_DELETE_URL", ""),
			APIKey:    envString("ASSETS_API_KEY", ""),
			APISecret: envString("ASSETS_API_SECRET", ""),
			Folder:    envString("ASSETS_FOLDER", "audit-reports"),
			Timeout:   envDuration("ASSETS_TIMEOUT", "30s"),
		},

		// Downstream webhook Configuration
		Webhook: WebhookConfig{
			URL:     envString("DELIVERY_WEBHOOK_URL", ""),
			Timeout: envDuration("WEBHOOK_TIMEOUT", "30s"),
		},

		// Report archive Configuration
		Archive: ArchiveConfig{
			Bucket:          envString("ARCHIVE_BUCKET", ""),
			Prefix:          envString("ARCHIVE_PREFIX", "reports"),
			Region:          envString("AWS_REGION", "us-east-2"),
			AccessKeyID:     envString("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: envString("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        envString("ARCHIVE_S3_ENDPOINT", ""),
			MaxRetries:      envInt("ARCHIVE_MAX_RETRIES", 3),
			Timeout:         envDuration("ARCHIVE_TIMEOUT", "30s"),
		},

		// Delivered-event queue Configuration
		Events: EventsConfig{
			URL:      envString("EVENTS_AMQP_URL", ""),
			Exchange: envString("EVENTS_EXCHANGE", ""),
			Queue:    envString("EVENTS_QUEUE", "audit-delivered"),
			Timeout:  envDuration("EVENTS_TIMEOUT", "10s"),
		},

		// HTTP Configuration
		HTTP: HTTPConfig{
			Addr:    envString("HTTP_ADDR", ":8080"),
			Timeout: envDuration("HTTP_TIMEOUT", "60s"),
		},

		// Handler Configuration
		Handler: HandlerConfig{
			Timeout:        envDuration("HANDLER_TIMEOUT", "90s"),
			MaxRequestSize: int64(envInt("HANDLER_MAX_REQUEST_SIZE", 10*1024*1024)),
			EnableHealth:   envBool("HANDLER_ENABLE_HEALTH", true),
		},

		// Lambda Configuration
		Lambda: LambdaConfig{
			Timeout: envDuration("LAMBDA_TIMEOUT", "180s"),
		},
	}

	return cfg, nil
}
