package bootstrap

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"sora-video-mcp/pkg/service/config"
)

func TestBootstrapperBuildsServer(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.APIKey = "test-key"

	b := NewBootstrapper(slog.Default(), cfg)
	mcpServer := b.CreateMCPServer()
	require.NotNil(t, mcpServer)

	// Registration must not panic even without a live remote endpoint.
	b.RegisterComponents(mcpServer)
}
