package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/illyshaieb/ace"
	"github.com/illyshaieb/ace/action"
)

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// NewServer creates an MCP server exposing every action in the
// registry. Calls go through the action dispatcher, so argument
// validation and failure handling behave exactly as they do for the
// assistant's own tool loop.
func NewServer(registry *action.Registry, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "ace-mcp-server",
		version: "1.0.0",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)

	dispatcher := action.NewDispatcher(registry)
	for _, d := range registry.All() {
		s.AddTool(ToMCPTool(d.Tool()), dispatchHandler(dispatcher, d.Name))
	}

	return s
}

// dispatchHandler wraps the dispatcher as an MCP tool handler.
func dispatchHandler(dispatcher *action.Dispatcher, name string) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := "{}"
		if req.Params.Arguments != nil {
			data, err := json.Marshal(req.Params.Arguments)
			if err != nil {
				return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
			}
			args = string(data)
		}

		result := dispatcher.Execute(ctx, ace.ToolCall{
			Name:      name,
			Arguments: args,
		})
		return ToMCPCallToolResult(result), nil
	}
}

// ServeStdio starts an MCP server for the registry over stdin/stdout,
// the standard transport for subprocess MCP servers.
func ServeStdio(registry *action.Registry, opts ...ServerOption) error {
	return server.ServeStdio(NewServer(registry, opts...))
}
