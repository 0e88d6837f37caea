// Package todo provides registration for todo management tools.
package todo

import (
	"github.com/d-kuro/todo-mcp/internal/prompts"
	"github.com/d-kuro/todo-mcp/internal/tools"
)

// CreateTodoTools creates all todo management tools using MCP SDK patterns.
func CreateTodoTools(ctx *tools.Context) []*tools.ServerTool {
	h := NewHandlers(ctx.Todos)
	p := prompts.Default()

	return []*tools.ServerTool{
		tools.NewToolBuilder[CreateTodoArgs](ToolCreateTodo, p.CreateTodo, ctx).WithHandler(h.Create).Build(),
		tools.NewToolBuilder[ListTodosArgs](ToolListTodos, p.ListTodos, ctx).WithHandler(h.List).Build(),
		tools.NewToolBuilder[TodoIDArgs](ToolGetTodo, p.GetTodo, ctx).WithHandler(h.Get).Build(),
		tools.NewToolBuilder[UpdateTodoArgs](ToolUpdateTodo, p.UpdateTodo, ctx).WithHandler(h.Update).Build(),
		tools.NewToolBuilder[TodoIDArgs](ToolDeleteTodo, p.DeleteTodo, ctx).WithHandler(h.Delete).Build(),
	}
}
