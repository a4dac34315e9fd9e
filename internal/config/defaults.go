package config

import "time"

// applyDefaults applies environment-specific defaults
func applyDefaults(cfg *Config) {
	if cfg.IsProduction() {
		// More conservative settings for production
		if cfg.Handler.Timeout < 60*time.Second {
			cfg.Handler.Timeout = 60 * time.Second
		}
		cfg.LogJSON = true
	}

	if cfg.IsLocal() {
		// Readable logs for local development
		cfg.LogJSON = false
	}
}
