package tools

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools adds every tool contract to the MCP server, with each
// handler routed through the dispatcher so that argument validation and
// error normalization apply uniformly.
func RegisterTools(mcpServer *server.MCPServer, deps ToolDependencies) {
	dispatcher := NewToolDispatcher(deps)

	for _, config := range toolConfigs {
		tool := mcp.Tool{
			Name:        config.Name,
			Description: config.Description,
			InputSchema: BuildToolSchema(config),
		}
		mcpServer.AddTool(tool, makeToolHandler(dispatcher, config.Name))

		if deps.Logger != nil {
			deps.Logger.Info("registered tool", slog.String("name", config.Name))
		}
	}
}

func makeToolHandler(dispatcher *Dispatcher, name string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := dispatcher.Dispatch(ctx, name, req.GetArguments())
		return &result, nil
	}
}
