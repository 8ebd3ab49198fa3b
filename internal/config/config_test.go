package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspaper/internal/config"
)

func TestMustLoadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: "prod"
storage_path: "./newspaper.db"
secret: "s3cret"
http_server:
  address: "0.0.0.0:9000"
session:
  cookie_secure: true
`), 0o600))

	cfg := config.MustLoadPath(path)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "./newspaper.db", cfg.StoragePath)
	assert.Equal(t, "s3cret", cfg.Secret)
	assert.Equal(t, "0.0.0.0:9000", cfg.Address)
	assert.True(t, cfg.CookieSecure)

	// Defaults
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 336*time.Hour, cfg.Lifetime)
	assert.Equal(t, 12*time.Hour, cfg.Session.IdleTimeout)
}

func TestMustLoadPathPanics(t *testing.T) {
	assert.Panics(t, func() {
		config.MustLoadPath(filepath.Join(t.TempDir(), "missing.yaml"))
	})

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`env: "local"`), 0o600))

	// storage_path and secret are required.
	assert.Panics(t, func() {
		config.MustLoadPath(path)
	})
}
