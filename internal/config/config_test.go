package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Cache.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, "llama3", cfg.LLM.Model)
	assert.Equal(t, 240000, cfg.Analytics.Salary)
	assert.InDelta(t, 0.20, cfg.Analytics.SavingsRate, 1e-9)
	assert.Equal(t, 0, cfg.Provider.MaxRetries)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("cache:\n  backend: memory\n  ttl: 10m\nllm:\n  model: mistral\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	t.Setenv("SERVER_PORT", "9090")

	cfg, err := LoadFrom(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "mistral", cfg.LLM.Model)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := LoadFrom(viper.New(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memcached")
}

func TestValidateSavingsRate(t *testing.T) {
	cfg, err := LoadFrom(viper.New(), t.TempDir())
	require.NoError(t, err)

	cfg.Analytics.SavingsRate = 0
	assert.Error(t, cfg.Validate())

	cfg.Analytics.SavingsRate = 1.5
	assert.Error(t, cfg.Validate())
}

func TestValidateProvider(t *testing.T) {
	cfg, err := LoadFrom(viper.New(), t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, cfg.ValidateProvider())

	cfg.Provider.URL = ""
	assert.EqualError(t, cfg.ValidateProvider(), "PROVIDER_URL is required")
}
