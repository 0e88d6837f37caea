// Package tools provides tool registry and common types for MCP tools.
package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/todo-mcp/internal/todo"
)

// ServerTool pairs a tool definition with the function that registers its
// typed handler on a server.
type ServerTool struct {
	Tool         *mcp.Tool
	RegisterFunc func(*mcp.Server)
}

// Context contains common dependencies needed by tools.
type Context struct {
	Logger Logger
	Todos  todo.Service
}

// Logger defines the logging interface for tools.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	WithTool(toolName string) Logger
}
