package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "ops-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.StoreBackend)
	assert.Equal(t, 25, cfg.SignupCredits)
	assert.Equal(t, 1, cfg.CreditsPerGeneration)
	assert.Equal(t, 500*time.Millisecond, cfg.SimulatedLatency)
}

func TestLoadSimulatedLatencyOverride(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "ops-secret")
	t.Setenv("SIMULATED_LATENCY_MS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.SimulatedLatency)
}

func TestLoadRequiresAdminPassword(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_PASSWORD")
}

func TestLoadValidatesBackendRequirements(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "ops-secret")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_ADDR")
}
