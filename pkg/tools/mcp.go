package tools

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/theapemachine/cinematch/pkg/registry"
)

/*
NewMCPServer exposes every tool in the registry over MCP.
*/
func NewMCPServer(name, version string, tools *registry.Registry) *server.MCPServer {
	srv := server.NewMCPServer(name, version, server.WithToolCapabilities(true))

	for _, def := range tools.List() {
		srv.AddTool(def.Tool(), Handler(def))
	}

	return srv
}

/*
Handler adapts a tool definition to an MCP tool handler. Tool failures are
reported as error results rather than protocol errors.
*/
func Handler(def registry.ToolDefinition) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log.Info("calling tool", "toolName", def.ToolName)

		out, err := def.Executor(ctx, req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(ResultText(out)), nil
	}
}

/*
ResultText renders a tool result as text. Strings pass through untouched and
everything else is encoded as JSON.
*/
func ResultText(out any) string {
	if text, ok := out.(string); ok {
		return text
	}

	jsonBytes, err := json.Marshal(out)
	if err != nil {
		log.Warn("failed to marshal tool result", "error", err)
		return "[error marshalling result]"
	}

	return string(jsonBytes)
}
