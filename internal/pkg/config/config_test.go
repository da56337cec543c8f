package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg := InitConfig("")

	assert.Equal(t, "gps-tracker", cfg.App.Name)
	assert.Equal(t, 2000, cfg.Server.Port)
	assert.Equal(t, "*", cfg.Server.AllowedOrigin)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 5*time.Second, cfg.Store.Timeout)
	assert.Equal(t, 100, cfg.Retention.Cap)
	assert.Equal(t, time.Duration(0), cfg.Retention.Interval)
	assert.False(t, cfg.Validation.StrictRange)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestInitConfig_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("STORE_DRIVER", "REDIS")
	t.Setenv("STORE_TIMEOUT", "2s")
	t.Setenv("RETENTION_CAP", "250")
	t.Setenv("RETENTION_INTERVAL", "90")
	t.Setenv("FRONTEND_URL", "https://tracker.example.com")
	t.Setenv("VALIDATION_STRICT_RANGE", "true")
	t.Setenv("DATABASE_URL", "postgres://gps:gps@db:5432/gps")

	cfg := InitConfig("")

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, 2*time.Second, cfg.Store.Timeout)
	assert.Equal(t, 250, cfg.Retention.Cap)
	assert.Equal(t, 90*time.Second, cfg.Retention.Interval)
	assert.Equal(t, "https://tracker.example.com", cfg.Server.AllowedOrigin)
	assert.True(t, cfg.Validation.StrictRange)
	assert.Equal(t, "postgres://gps:gps@db:5432/gps", cfg.Database.URL)
}

func TestInitConfig_CORSOriginPrecedence(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://a.example.com")
	t.Setenv("FRONTEND_URL", "https://b.example.com")

	cfg := InitConfig("")

	assert.Equal(t, "https://a.example.com", cfg.Server.AllowedOrigin)
}

func TestInitConfig_NegativeRetentionCap(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("RETENTION_CAP", "-5")

	cfg := InitConfig("")

	assert.Equal(t, 0, cfg.Retention.Cap)
}

func TestInitConfig_LoadsDotenvForLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GPS_TEST_RETENTION_MARKER=1\nSTORE_DRIVER=sqlite\n"), 0o600))

	t.Setenv("APP_ENV", "local")
	// Register for cleanup so the values loaded from the file do not leak into other tests
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("GPS_TEST_RETENTION_MARKER", "")
	os.Unsetenv("STORE_DRIVER")
	os.Unsetenv("GPS_TEST_RETENTION_MARKER")

	cfg := InitConfig(path)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "1", os.Getenv("GPS_TEST_RETENTION_MARKER"))
}

func TestInitConfig_PortAlias(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "3000")

	assert.Equal(t, 3000, InitConfig("").Server.Port)

	t.Setenv("SERVER_PORT", "4000")
	assert.Equal(t, 4000, InitConfig("").Server.Port)
}
