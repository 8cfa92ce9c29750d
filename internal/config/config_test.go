package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clientKeys = []string{
	"SHOP_API_URL", "SHOP_API_TIMEOUT", "SHOP_DATA_DIR", "SHOP_STORE",
	"REDIS_URL", "REDIS_ADDR", "REDIS_PASSWORD", "SHOP_REDIS_PREFIX",
	"SHOP_LOCALE", "SHOP_THEME", "SHOP_LOG_FILE", "SHOP_LOG_LEVEL",
}

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t, clientKeys...)
	dir := t.TempDir()
	t.Setenv("SHOP_DATA_DIR", dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8082", cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.APITimeout)
	assert.Equal(t, StoreFile, cfg.Store)
	assert.Equal(t, "vi", cfg.Locale)
	assert.Equal(t, filepath.Join(dir, "shop.log"), cfg.LogFile)
	assert.Equal(t, "shopfront:", cfg.RedisPrefix)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t, clientKeys...)
	t.Setenv("SHOP_DATA_DIR", t.TempDir())
	t.Setenv("SHOP_STORE", "Redis")
	t.Setenv("SHOP_API_TIMEOUT", "250ms")
	t.Setenv("REDIS_URL", "redis://localhost:6380/1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, 250*time.Millisecond, cfg.APITimeout)
	assert.Equal(t, "redis://localhost:6380/1", cfg.RedisURL)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t, clientKeys...)
	t.Setenv("SHOP_DATA_DIR", t.TempDir())

	t.Setenv("SHOP_STORE", "postgres")
	_, err := Load()
	assert.ErrorContains(t, err, "SHOP_STORE")

	t.Setenv("SHOP_STORE", "")
	t.Setenv("SHOP_API_TIMEOUT", "soon")
	_, err = Load()
	assert.ErrorContains(t, err, "SHOP_API_TIMEOUT")
}

func TestLoadServer(t *testing.T) {
	clearEnv(t, "APP_ENV", "SHOPAPI_PORT", "PORT", "JWT_SECRET", "JWT_EXPIRY", "ORIGIN_URL")

	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, "8082", cfg.Port)
	assert.Equal(t, "dev-secret", cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Empty(t, cfg.Origins)

	t.Setenv("APP_ENV", "production")
	_, err = LoadServer()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SHOPAPI_PORT", "9000")
	t.Setenv("ORIGIN_URL", "http://localhost:5173, https://shop.example ")
	cfg, err = LoadServer()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"http://localhost:5173", "https://shop.example"}, cfg.Origins)
}

func TestLoadEnv(t *testing.T) {
	// godotenv does not override variables that exist, even empty ones
	clearEnv(t, "SHOP_LOCALE", "SHOP_THEME")
	os.Unsetenv("SHOP_LOCALE")
	os.Unsetenv("SHOP_THEME")
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SHOP_LOCALE=en\nSHOP_THEME=dark\n"), 0o600))

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "en", os.Getenv("SHOP_LOCALE"))
	assert.Equal(t, "dark", os.Getenv("SHOP_THEME"))

	assert.NoError(t, LoadEnv(filepath.Join(t.TempDir(), "missing.env")))
}
