package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	t.Setenv("ACCESS_SECRET", "a-secret")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPPort)
	assert.Equal(t, ":50051", cfg.GRPCPort)
	assert.Equal(t, "postgres", cfg.StorageDriver)
	assert.Equal(t, "a-secret", cfg.AccessSecret)
	assert.False(t, cfg.UseMemoryStorage())
}

func TestLoadConfigReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "STORAGE_DRIVER=memory\nDB_NAME=learnpak_test\nALLOWED_ORIGINS=https://a.example, https://b.example\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.True(t, cfg.UseMemoryStorage())
	assert.Equal(t, "learnpak_test", cfg.DBName)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())
}
