// Package server implements the MCP server exposing the todo tools.
package server

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/todo-mcp/internal/logging"
	"github.com/d-kuro/todo-mcp/internal/todo"
	"github.com/d-kuro/todo-mcp/internal/tools"
	todotools "github.com/d-kuro/todo-mcp/internal/tools/todo"
	"github.com/d-kuro/todo-mcp/pkg/version"
)

// Name is the implementation name reported to MCP clients.
const Name = "todo-mcp-server"

// loggerAdapter wraps logging.Logger to implement tools.Logger interface.
// This avoids circular dependency between logging and tools packages.
type loggerAdapter struct {
	*logging.Logger
}

// WithTool implements tools.Logger interface.
func (a *loggerAdapter) WithTool(toolName string) tools.Logger {
	return &loggerAdapter{Logger: a.Logger.WithTool(toolName)}
}

// Server represents the todo MCP server.
type Server struct {
	mcpServer *mcp.Server
	registry  *tools.Registry
	logger    *logging.Logger
}

// Options configures the server instance.
type Options struct {
	Logger *logging.Logger
	Todos  todo.Service
}

// New creates a new todo MCP server with the given options.
func New(opts *Options) (*Server, error) {
	if opts.Todos == nil {
		return nil, fmt.Errorf("todo service is required")
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    Name,
		Version: version.GetVersion().Version,
	}, nil)

	server := &Server{
		mcpServer: mcpServer,
		registry:  tools.NewRegistry(),
		logger:    opts.Logger,
	}

	if err := server.registerTools(opts.Todos); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return server, nil
}

// GetRegistry returns the tool registry.
func (s *Server) GetRegistry() *tools.Registry {
	return s.registry
}

// registerTools registers the todo tools with the registry and the MCP server.
func (s *Server) registerTools(svc todo.Service) error {
	s.logger.Debug("Registering tools with MCP server")

	toolCtx := &tools.Context{
		Logger: &loggerAdapter{Logger: s.logger},
		Todos:  svc,
	}

	if err := s.registry.Register(todotools.CreateTodoTools(toolCtx)...); err != nil {
		return err
	}
	if err := s.registry.Validate(); err != nil {
		return fmt.Errorf("tool registry validation failed: %w", err)
	}

	s.registry.Install(s.mcpServer)

	s.logger.Info("Successfully registered tools",
		"count", s.registry.Count(),
		"tools", s.registry.List(),
	)
	return nil
}

// Serve runs the MCP server with the specified transport.
// It connects the MCP server to the transport and waits for either
// the session to complete or the context to be cancelled.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	logger := s.logger.WithSession(uuid.NewString())
	logger.Info("Starting MCP server transport",
		"transport", fmt.Sprintf("%T", transport),
		"version", version.GetVersion().Version,
		"tools", s.registry.Count(),
	)

	// Connect the MCP server to the transport
	session, err := s.mcpServer.Connect(ctx, transport)
	if err != nil {
		return fmt.Errorf("failed to connect MCP server: %w", err)
	}

	// Wait for either the session to finish or context cancellation
	sessionDone := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("MCP session goroutine panicked", "panic", r)
				sessionDone <- fmt.Errorf("session panicked: %v", r)
			}
		}()
		sessionDone <- session.Wait()
	}()

	select {
	case err := <-sessionDone:
		logger.Info("MCP session finished")
		return err
	case <-ctx.Done():
		logger.Info("MCP server shutting down due to context cancellation")
		_ = session.Close()
		return ctx.Err()
	}
}
