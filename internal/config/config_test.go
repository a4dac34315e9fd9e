package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := parse()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, "audit-delivery", cfg.ServiceName)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "audit-reports", cfg.Assets.Folder)
	assert.Equal(t, 30*time.Second, cfg.Assets.Timeout)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "audit-delivered", cfg.Events.Queue)
	assert.True(t, cfg.Handler.EnableHealth)
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("DELIVERY_WEBHOOK_URL", "https://hooks.test/delivery")
	t.Setenv("WEBHOOK_TIMEOUT", "5s")

	cfg, err := parse()
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Equal(t, "https://hooks.test/delivery", cfg.Webhook.URL)
	assert.Equal(t, 5*time.Second, cfg.Webhook.Timeout)
}

func TestParse_InvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")

	cfg, err := parse()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg, err := parse()
		require.NoError(t, err)
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("requires service name", func(t *testing.T) {
		cfg := valid()
		cfg.ServiceName = ""
		assert.ErrorContains(t, cfg.Validate(), "SERVICE_NAME")
	})

	t.Run("requires asset credentials in production", func(t *testing.T) {
		cfg := valid()
		cfg.Environment = "production"
		cfg.Assets.UploadURL = ""

		err := cfg.Validate()
		assert.ErrorContains(t, err, "ASSETS_UPLOAD_URL")
		assert.ErrorContains(t, err, "ASSETS_API_SECRET")
	})

	t.Run("requires api key when upload URL set", func(t *testing.T) {
		cfg := valid()
		cfg.Assets.UploadURL = "https://assets.test/upload"
		cfg.Assets.APIKey = ""
		assert.ErrorContains(t, cfg.Validate(), "ASSETS_API_KEY")
	})

	t.Run("joins multiple errors", func(t *testing.T) {
		cfg := valid()
		cfg.ServiceName = ""
		cfg.Webhook.Timeout = 0

		err := cfg.Validate()
		assert.ErrorContains(t, err, "SERVICE_NAME")
		assert.ErrorContains(t, err, "WEBHOOK_TIMEOUT")
	})
}

func TestConfig_EnvironmentDetection(t *testing.T) {
	cfg := &Config{Environment: "production"}
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsLocal())

	cfg.Environment = "dev"
	assert.True(t, cfg.IsLocal())

	cfg.Environment = "stage"
	assert.True(t, cfg.IsStaging())

	cfg.Environment = "testing"
	assert.True(t, cfg.IsTest())
}

func TestProvider(t *testing.T) {
	provider := GetProvider()
	provider.Reset()
	t.Cleanup(provider.Reset)

	t.Run("get before load fails", func(t *testing.T) {
		_, err := provider.Get()
		assert.Error(t, err)
		assert.False(t, provider.IsLoaded())
	})

	t.Run("load then get", func(t *testing.T) {
		require.NoError(t, provider.Load())
		assert.True(t, provider.IsLoaded())

		cfg, err := provider.Get()
		require.NoError(t, err)
		assert.Equal(t, "audit-delivery", cfg.ServiceName)

		// Same singleton on every call.
		assert.Same(t, provider, GetProvider())
	})

	t.Run("load is idempotent", func(t *testing.T) {
		require.NoError(t, provider.Load())
		require.NoError(t, provider.Load())
	})
}
