package config

import (
	"encoding/base64"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable LoadConfig reads so the host environment
// can't leak into a test.
func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "DB_DRIVER", "DATABASE_URL", "COOKIE_DOMAIN", "COOKIE_SECURE", "TEMPLATES_DIR",
		"STATIC_DIR", "SITE_URL", "STORAGE_BACKEND", "STORAGE_BUCKET", "STORAGE_DIR",
		"STORAGE_PUBLIC_URL", "GCS_CREDENTIALS_FILE", "LOG_LEVEL", "CSRF_KEY", "SESSION_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfigLocalStorage(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8585")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "./wilsons.db")
	t.Setenv("STORAGE_BACKEND", "local")
	t.Setenv("STORAGE_DIR", "./uploads")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("SITE_URL", "https://example.com/")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8585", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/uploads", cfg.Storage.PublicURL)
	assert.Equal(t, "https://example.com", cfg.SiteURL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.CookieSecure)
	assert.Len(t, cfg.CSRFKey, 32)
	assert.Len(t, cfg.SessionKey, 32)
	assert.NotEqual(t, cfg.CSRFKey, cfg.SessionKey)
}

func TestLoadConfigKeysFromEnv(t *testing.T) {
	clearEnv(t)
	key := []byte(strings.Repeat("k", 40))
	t.Setenv("CSRF_KEY", base64.StdEncoding.EncodeToString(key))
	t.Setenv("SESSION_KEY", base64.StdEncoding.EncodeToString([]byte("short")))
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("STORAGE_BACKEND", "gcs")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, key, cfg.CSRFKey)
	assert.Len(t, cfg.SessionKey, 32)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Empty(t, cfg.Storage.PublicURL)
	assert.True(t, cfg.CookieSecure)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"DB_DRIVER":       "mysql",
		"STORAGE_BACKEND": "s3",
		"LOG_LEVEL":       "loud",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DB_DRIVER", "sqlite")
			t.Setenv("STORAGE_BACKEND", "local")
			t.Setenv("LOG_LEVEL", "info")
			t.Setenv(key, value)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigInvalidPortFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("STORAGE_BACKEND", "local")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("PORT", "http")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8585", cfg.Port)
}
