package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casedocs/internal/adapters/driven/config/file"
	"github.com/custodia-labs/casedocs/internal/core/domain"
)

func TestConfigShowCmd(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.config.Set(file.KeyAILLMModel, "llama3"))

	out, err := run(t, "config")

	require.NoError(t, err)
	for _, key := range file.Keys {
		assert.Contains(t, out, key)
	}
	assert.Contains(t, out, "* "+file.KeyAILLMModel)
	assert.Contains(t, out, "* set in :memory:")
}

func TestConfigPathCmd(t *testing.T) {
	setupTestServices(t)

	out, err := run(t, "config", "path")

	require.NoError(t, err)
	assert.Equal(t, ":memory:\n", out)
}

func TestConfigSetCmd(t *testing.T) {
	env := setupTestServices(t)

	out, err := run(t, "config", "set", file.KeyPortalRequestsPerSecond, "0.5")

	require.NoError(t, err)
	assert.Contains(t, out, "portal.requests_per_second = 0.5")
	assert.InDelta(t, 0.5, env.config.GetFloat(file.KeyPortalRequestsPerSecond), 1e-9)
}

func TestConfigSetCmd_UnknownKey(t *testing.T) {
	setupTestServices(t)

	_, err := run(t, "config", "set", "portal.colour", "blue")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigCmd_NotConfigured(t *testing.T) {
	env := setupTestServices(t)
	env.services.Config = nil

	_, err := run(t, "config", "path")

	assert.EqualError(t, err, "config store not configured")
}

func TestParseConfigValue(t *testing.T) {
	assert.Equal(t, int64(300), parseConfigValue("300"))
	assert.Equal(t, 0.6, parseConfigValue("0.6"))
	assert.Equal(t, true, parseConfigValue("true"))
	assert.Equal(t, "60s", parseConfigValue("60s"))
	assert.Equal(t, "llama3", parseConfigValue("llama3"))
}
