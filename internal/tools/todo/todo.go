// Package todo provides the MCP tools for managing the shared todo list.
package todo

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/todo-mcp/internal/todo"
	"github.com/d-kuro/todo-mcp/internal/tools"
)

// Tool names.
const (
	ToolCreateTodo = "create_todo"
	ToolListTodos  = "list_todos"
	ToolGetTodo    = "get_todo"
	ToolUpdateTodo = "update_todo"
	ToolDeleteTodo = "delete_todo"
)

// CreateTodoArgs represents the arguments for the create_todo tool.
type CreateTodoArgs struct {
	Title       string `json:"title" jsonschema:"Todo title"`
	Description string `json:"description,omitempty" jsonschema:"Todo description, markdown allowed"`
}

// ListTodosArgs represents the (empty) arguments for the list_todos tool.
type ListTodosArgs struct{}

// TodoIDArgs represents the arguments for tools addressing one todo.
type TodoIDArgs struct {
	TodoID string `json:"todo_id" jsonschema:"Todo ID"`
}

// UpdateTodoArgs represents the arguments for the update_todo tool.
type UpdateTodoArgs struct {
	TodoID      string  `json:"todo_id" jsonschema:"Todo ID"`
	Title       *string `json:"title,omitempty" jsonschema:"New title"`
	Description *string `json:"description,omitempty" jsonschema:"New description"`
	Completed   *bool   `json:"completed,omitempty" jsonschema:"Completion status"`
}

// Handlers implements the todo tools over a todo.Service.
type Handlers struct {
	svc todo.Service
}

// NewHandlers creates tool handlers bound to svc.
func NewHandlers(svc todo.Service) *Handlers {
	return &Handlers{svc: svc}
}

// Create handles create_todo.
func (h *Handlers) Create(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[CreateTodoArgs]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments

	t, err := h.svc.Create(ctx, todo.CreateInput{Title: args.Title, Description: args.Description})
	if err != nil {
		return tools.ServiceErrorResponse(err), nil
	}

	return tools.NewResponse().
		WithText(formatCreated(t)).
		WithJSON(t).
		WithMeta("id", t.ID).
		Build(), nil
}

// List handles list_todos.
func (h *Handlers) List(ctx context.Context, _ *mcp.ServerSession, _ *mcp.CallToolParamsFor[ListTodosArgs]) (*mcp.CallToolResultFor[any], error) {
	todos, err := h.svc.List(ctx)
	if err != nil {
		return tools.ServiceErrorResponse(err), nil
	}
	if todos == nil {
		todos = []todo.Todo{}
	}

	return tools.NewResponse().
		WithText(formatList(todos)).
		WithJSON(todos).
		WithMeta("count", len(todos)).
		Build(), nil
}

// Get handles get_todo.
func (h *Handlers) Get(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[TodoIDArgs]) (*mcp.CallToolResultFor[any], error) {
	t, err := h.svc.Get(ctx, params.Arguments.TodoID)
	if err != nil {
		return tools.ServiceErrorResponse(err), nil
	}

	return tools.NewResponse().
		WithText(formatDetail(t)).
		WithJSON(t).
		Build(), nil
}

// Update handles update_todo.
func (h *Handlers) Update(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[UpdateTodoArgs]) (*mcp.CallToolResultFor[any], error) {
	args := params.Arguments

	t, err := h.svc.Update(ctx, args.TodoID, todo.Patch{
		Title:       args.Title,
		Description: args.Description,
		Completed:   args.Completed,
	})
	if err != nil {
		return tools.ServiceErrorResponse(err), nil
	}

	return tools.NewResponse().
		WithText(formatUpdated(t)).
		WithJSON(t).
		Build(), nil
}

// Delete handles delete_todo.
func (h *Handlers) Delete(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[TodoIDArgs]) (*mcp.CallToolResultFor[any], error) {
	id := params.Arguments.TodoID
	if err := h.svc.Delete(ctx, id); err != nil {
		return tools.ServiceErrorResponse(err), nil
	}

	return tools.NewResponse().
		WithText(formatDeleted()).
		WithMeta("id", id).
		Build(), nil
}
