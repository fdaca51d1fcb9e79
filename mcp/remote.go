package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/illyshaieb/ace"
	"github.com/illyshaieb/ace/action"
)

// RemoteRegistry provides access to tools served by an external MCP
// server. The tool list is cached locally and can be refreshed with
// Refresh. Safe for concurrent use.
type RemoteRegistry struct {
	client *client.Client
	mu     sync.RWMutex
	order  []string
	tools  map[string]ace.Tool
}

// NewRemoteRegistry connects to an MCP server via stdio. The command is
// the path to the server executable; args are passed to it.
func NewRemoteRegistry(ctx context.Context, command string, env []string, args ...string) (*RemoteRegistry, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("mcp: create client: %w", err)
	}
	return newRemoteRegistry(ctx, c)
}

// NewRemoteRegistryFromClient wraps an existing MCP client. The client
// is started and initialized here.
func NewRemoteRegistryFromClient(ctx context.Context, c *client.Client) (*RemoteRegistry, error) {
	return newRemoteRegistry(ctx, c)
}

func newRemoteRegistry(ctx context.Context, c *client.Client) (*RemoteRegistry, error) {
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("mcp: start client: %w", err)
	}

	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "ace-mcp-client",
				Version: "1.0.0",
			},
		},
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("mcp: initialize session: %w", err)
	}

	r := &RemoteRegistry{
		client: c,
		tools:  make(map[string]ace.Tool),
	}
	if err := r.Refresh(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("mcp: list tools: %w", err)
	}
	return r, nil
}

// Close closes the connection to the MCP server.
func (r *RemoteRegistry) Close() error {
	return r.client.Close()
}

// Refresh fetches the current tool list from the server.
func (r *RemoteRegistry) Refresh(ctx context.Context) error {
	result, err := r.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.order = r.order[:0]
	r.tools = make(map[string]ace.Tool, len(result.Tools))
	for _, t := range result.Tools {
		r.order = append(r.order, t.Name)
		r.tools[t.Name] = FromMCPTool(t)
	}
	return nil
}

// Tools returns the remote tools in server order.
func (r *RemoteRegistry) Tools() []ace.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]ace.Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// Len returns the number of remote tools.
func (r *RemoteRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Execute calls a tool on the remote server. Call failures come back as
// failed ToolResults, matching the dispatcher contract.
func (r *RemoteRegistry) Execute(ctx context.Context, call ace.ToolCall) ace.ToolResult {
	result, err := r.client.CallTool(ctx, ToMCPCallToolRequest(call))
	if err != nil {
		return ace.ToolResult{
			ToolCallID: call.ID,
			Content:    err.Error(),
			IsError:    true,
		}
	}
	return FromMCPCallToolResult(call.ID, result)
}

// Mount registers every remote tool as an action on the registry, so
// the assistant can call external skills alongside the built-in ones.
// Argument validation is left to the remote server; its schema is
// advertised to the model as-is.
func (r *RemoteRegistry) Mount(reg *action.Registry) error {
	for _, t := range r.Tools() {
		name := t.Name
		err := reg.Register(action.Descriptor{
			Name:        name,
			Description: t.Description,
			Schema:      t.Parameters,
			Handler: func(ctx context.Context, args action.Args) (any, error) {
				data, err := json.Marshal(map[string]any(args))
				if err != nil {
					return nil, err
				}
				result := r.Execute(ctx, ace.ToolCall{Name: name, Arguments: string(data)})
				if result.IsError {
					return nil, fmt.Errorf("%s", result.Content)
				}
				return result.Content, nil
			},
		})
		if err != nil {
			return err
		}
	}
	return nil
}
