package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("APP_ENV")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SERVER_PORT")

	os.Setenv("SHOP_API_URL", "https://shop.test/api")
	os.Setenv("SHOP_CDN_URL", "https://shop.test/content")
	defer func() {
		os.Unsetenv("SHOP_API_URL")
		os.Unsetenv("SHOP_CDN_URL")
	}()

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 300, cfg.Cache.CatalogTTL)
	assert.Empty(t, cfg.Cache.RedisURL)
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	os.Setenv("APP_ENV", "production")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("SHOP_API_URL", "https://example.com/api")
	os.Setenv("SHOP_CDN_URL", "https://cdn.example.com")
	os.Setenv("REDIS_URL", "redis://localhost:6379")
	os.Setenv("CATALOG_CACHE_TTL", "60")
	defer func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("SHOP_API_URL")
		os.Unsetenv("SHOP_CDN_URL")
		os.Unsetenv("REDIS_URL")
		os.Unsetenv("CATALOG_CACHE_TTL")
	}()

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "https://example.com/api", cfg.ShopAPI.BaseURL)
	assert.Equal(t, "https://cdn.example.com", cfg.ShopAPI.CDNURL)
	assert.Equal(t, "redis://localhost:6379", cfg.Cache.RedisURL)
	assert.Equal(t, 60, cfg.Cache.CatalogTTL)
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	content := []byte(`
APP_ENV=staging
LOG_LEVEL=warn
SERVER_PORT=7070
SHOP_API_URL=https://staging.example.com/api
SHOP_CDN_URL=https://staging-cdn.example.com
`)
	err := os.WriteFile(".env", content, 0644)
	require.NoError(t, err)
	defer os.Remove(".env")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, "https://staging.example.com/api", cfg.ShopAPI.BaseURL)
}

// TestLoad_ValidationFailure verifies that missing required fields return an error.
func TestLoad_ValidationFailure(t *testing.T) {
	os.Unsetenv("SHOP_API_URL")
	os.Unsetenv("SHOP_CDN_URL")

	cfg, err := Load(".")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "missing required configuration")
}
