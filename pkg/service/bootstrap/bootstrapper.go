// Package bootstrap provides server initialization and component wiring.
package bootstrap

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"sora-video-mcp/pkg/service/config"
	"sora-video-mcp/pkg/service/tools"
	"sora-video-mcp/pkg/sora"
)

// Bootstrapper assembles the MCP server from configuration.
type Bootstrapper struct {
	logger *slog.Logger
	config *config.Config
}

// NewBootstrapper creates a bootstrapper instance.
func NewBootstrapper(logger *slog.Logger, cfg *config.Config) *Bootstrapper {
	return &Bootstrapper{logger: logger, config: cfg}
}

// CreateMCPServer creates the mcp-go server with tool capabilities.
func (b *Bootstrapper) CreateMCPServer() *server.MCPServer {
	return server.NewMCPServer(
		b.config.ServiceName,
		b.config.ServiceVersion,
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)
}

// RegisterComponents wires the API client into the tool set and
// registers every tool with the MCP server.
func (b *Bootstrapper) RegisterComponents(mcpServer *server.MCPServer) {
	client := sora.NewClient(sora.Options{
		APIKey:  b.config.APIKey,
		BaseURL: b.config.BaseURL,
		Timeout: b.config.HTTPTimeout,
		Logger:  b.logger,
	})

	tools.RegisterTools(mcpServer, tools.ToolDependencies{
		Client: client,
		Logger: b.logger,
	})
}
