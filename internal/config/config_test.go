package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unset clears key for the duration of the test.
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.env"))
	unset(t, "NODE_ENV", "RATE_LIMIT_WINDOW", "RATE_LIMIT_MAX", "HPP_WHITELIST", "STORAGE_DRIVER")
	t.Setenv("PORT", "5000")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Empty(t, cfg.Env)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 10*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, int64(100<<10), cfg.JSONBodyLimit)
	assert.Equal(t, "public", cfg.PublicDir)
	assert.Equal(t, "local", cfg.StorageDriver)
	assert.Empty(t, cfg.HPPWhitelist)
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.env")
	content := "NODE_ENV=production\nPORT=5001\nJWT_SECRET=fromfile\nHPP_WHITELIST=select, sort\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	unset(t, "NODE_ENV", "PORT", "JWT_SECRET", "HPP_WHITELIST", "STORAGE_DRIVER")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5001", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "fromfile", cfg.JWTSecret)
	assert.Equal(t, []string{"select", "sort"}, cfg.HPPWhitelist)
}

func TestLoadEnvironmentWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=5001\nJWT_SECRET=x\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7000")
	t.Setenv("JWT_SECRET", "x")
	unset(t, "STORAGE_DRIVER")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.env"))
	unset(t, "PORT", "JWT_SECRET", "STORAGE_DRIVER")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadS3RequiresBucket(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("PORT", "5000")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE_DRIVER", "s3")
	unset(t, "S3_REGION", "S3_BUCKET")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_BUCKET")
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("PORT", "5000")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("RATE_LIMIT_WINDOW", "ten minutes")
	t.Setenv("RATE_LIMIT_MAX", "many")
	t.Setenv("TRUST_PROXY", "maybe")
	unset(t, "STORAGE_DRIVER")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.False(t, cfg.TrustProxy)
}

func TestLoadRejectsNonPositiveRateLimit(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero window", "RATE_LIMIT_WINDOW", "0s"},
		{"negative window", "RATE_LIMIT_WINDOW", "-1m"},
		{"zero max", "RATE_LIMIT_MAX", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.env"))
			t.Setenv("PORT", "5000")
			t.Setenv("JWT_SECRET", "secret")
			unset(t, "STORAGE_DRIVER", "RATE_LIMIT_WINDOW", "RATE_LIMIT_MAX")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
