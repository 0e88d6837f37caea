// Package tools provides tool registry and unified registration framework for MCP tools.
package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Registry manages the collection of available tools.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*ServerTool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]*ServerTool),
	}
}

// Register registers tools with the registry.
func (r *Registry) Register(tools ...*ServerTool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, tool := range tools {
		if tool == nil || tool.Tool == nil {
			return fmt.Errorf("tool definition cannot be nil")
		}

		name := tool.Tool.Name
		if name == "" {
			return fmt.Errorf("tool name cannot be empty")
		}

		if _, exists := r.tools[name]; exists {
			return fmt.Errorf("tool %s is already registered", name)
		}

		r.tools[name] = tool
	}
	return nil
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (*ServerTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, exists := r.tools[name]
	return tool, exists
}

// List returns all registered tool names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tools)
}

// Validate checks if all registered tools are properly configured.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for name, tool := range r.tools {
		if tool.Tool.Name != name {
			return fmt.Errorf("tool name mismatch: registered as %s but reports name %s", name, tool.Tool.Name)
		}

		if tool.Tool.Description == "" {
			return fmt.Errorf("tool %s has empty description", name)
		}

		if tool.RegisterFunc == nil {
			return fmt.Errorf("tool %s has nil register function", name)
		}
	}

	return nil
}

// Install registers every tool's handler on server in name order.
func (r *Registry) Install(server *mcp.Server) {
	for _, name := range r.List() {
		tool, _ := r.Get(name)
		tool.RegisterFunc(server)
	}
}

// ToolBuilder provides a fluent interface for building tools with type safety.
type ToolBuilder[T any] struct {
	name        string
	description string
	handler     func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[T]) (*mcp.CallToolResultFor[any], error)
	ctx         *Context
}

// NewToolBuilder creates a new tool builder with type-safe parameter validation.
func NewToolBuilder[T any](name, description string, ctx *Context) *ToolBuilder[T] {
	return &ToolBuilder[T]{
		name:        name,
		description: description,
		ctx:         ctx,
	}
}

// WithHandler sets the tool handler function with proper MCP SDK typing.
func (b *ToolBuilder[T]) WithHandler(handler func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[T]) (*mcp.CallToolResultFor[any], error)) *ToolBuilder[T] {
	b.handler = handler
	return b
}

// Build creates the ServerTool with all configured options.
// The input schema is inferred from T when the tool is added to a server.
func (b *ToolBuilder[T]) Build() *ServerTool {
	if b.handler == nil {
		panic(fmt.Sprintf("handler not set for tool %s", b.name))
	}

	tool := &mcp.Tool{
		Name:        b.name,
		Description: b.description,
	}

	handler := b.handler
	if b.ctx != nil && b.ctx.Logger != nil {
		handler = withLogging(b.ctx.Logger.WithTool(b.name), handler)
	}

	return &ServerTool{
		Tool: tool,
		RegisterFunc: func(server *mcp.Server) {
			mcp.AddTool(server, tool, handler)
		},
	}
}

// withLogging logs each call and any tool-level failure.
func withLogging[T any](logger Logger, next func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[T]) (*mcp.CallToolResultFor[any], error)) func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[T]) (*mcp.CallToolResultFor[any], error) {
	return func(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[T]) (*mcp.CallToolResultFor[any], error) {
		logger.Debug("Tool called")

		result, err := next(ctx, session, params)
		switch {
		case err != nil:
			logger.Error("Tool failed", "error", err)
		case result != nil && result.IsError:
			logger.Warn("Tool returned error result")
		}
		return result, err
	}
}
