package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "http://localhost:8080", cfg.App.SiteURL)
	assert.Equal(t, StorageDriverBadger, cfg.Storage.Driver)
	assert.Equal(t, "folio:", cfg.Storage.Prefix)
	assert.Equal(t, 4, cfg.Auth.MinPasswordLength)
	assert.Equal(t, 300*time.Millisecond, cfg.Persistence.Debounce)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "storage:\n  driver: memory\npersistence:\n  debounce: 0s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("APP_PORT", "9999")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, time.Duration(0), cfg.Persistence.Debounce)
	assert.Equal(t, "9999", cfg.App.Port)
}
