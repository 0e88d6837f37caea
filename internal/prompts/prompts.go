// Package prompts provides centralized management for the descriptions
// the todo MCP server publishes for its tools.
package prompts

// ToolPrompts contains all prompts for MCP tools
type ToolPrompts struct {
	CreateTodo string
	ListTodos  string
	GetTodo    string
	UpdateTodo string
	DeleteTodo string
}

// Default returns the default prompts configuration
func Default() *ToolPrompts {
	return &ToolPrompts{
		CreateTodo: CreateTodoToolDescription,
		ListTodos:  ListTodosToolDescription,
		GetTodo:    GetTodoToolDescription,
		UpdateTodo: UpdateTodoToolDescription,
		DeleteTodo: DeleteTodoToolDescription,
	}
}
