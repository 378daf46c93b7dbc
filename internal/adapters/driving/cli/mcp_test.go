package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServeCmd_Flags(t *testing.T) {
	port := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "p", port.Shorthand)
	assert.Equal(t, "0", port.DefValue)
}

func TestMCPCmd_HasServe(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"mcp", "serve"})
	require.NoError(t, err)
	assert.Equal(t, mcpServeCmd, cmd)
}

func TestMCPServeCmd_NoServices(t *testing.T) {
	setupTestServices(t)
	SetServices(nil)

	_, err := run(t, "mcp", "serve")

	assert.EqualError(t, err, "services not configured")
}
