package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Handler is the signature shared by all tool handlers. Handlers report
// failures as error tool-results; the returned error is reserved for
// transport-level faults and stays nil in practice.
type Handler func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// Registry collects tool definitions and their handlers so the set can
// be dispatched directly (by name) or attached to an MCP server.
type Registry struct {
	order    []string
	tools    map[string]mcp.Tool
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tools:    make(map[string]mcp.Tool),
		handlers: make(map[string]Handler),
	}
}

// Add registers a tool definition with its handler. Re-adding a name
// replaces the previous registration.
func (r *Registry) Add(tool mcp.Tool, handler Handler) {
	if _, exists := r.tools[tool.Name]; !exists {
		r.order = append(r.order, tool.Name)
	}
	r.tools[tool.Name] = tool
	r.handlers[tool.Name] = handler
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	return append([]string{}, r.order...)
}

// Dispatch invokes the handler registered under name. An unrecognized
// name is a client error, answered with an error tool-result rather
// than a transport fault.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	handler, ok := r.handlers[name]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Unknown tool: %s", name)), nil
	}

	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args

	return handler(ctx, request)
}

// Attach registers every tool on the given MCP server.
func (r *Registry) Attach(s *mcpserver.MCPServer) {
	for _, name := range r.order {
		s.AddTool(r.tools[name], mcpserver.ToolHandlerFunc(r.handlers[name]))
	}
}
