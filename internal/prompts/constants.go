// Package prompts contains all prompt strings and descriptions used by the tools.
package prompts

// Todo tool descriptions
const (
	// CreateTodoToolDescription is the description for the create_todo tool
	CreateTodoToolDescription = `Create a new todo item.

Usage:
- title is required and must contain at least one non-whitespace character; surrounding whitespace is trimmed
- description is optional and may contain markdown
- New todos start as not completed
- Returns the created todo's title and ID, followed by the full todo as JSON`

	// ListTodosToolDescription is the description for the list_todos tool
	ListTodosToolDescription = `List all todo items.

Usage:
- This tool takes no parameters
- Each entry shows a status glyph (✓ completed, ○ pending), the title, a shortened description and the ID
- Use the ID with get_todo, update_todo or delete_todo
- The full list is returned afterwards as a JSON array`

	// GetTodoToolDescription is the description for the get_todo tool
	GetTodoToolDescription = `Get a specific todo item by ID.

Usage:
- todo_id is required
- Returns title, status, description, creation time and ID
- Returns an error result when no todo has the given ID`

	// UpdateTodoToolDescription is the description for the update_todo tool
	UpdateTodoToolDescription = `Update a todo item (title, description, or completion status).

Usage:
- todo_id is required
- Only the fields you pass are changed; omitted fields keep their current value
- Set completed to true to mark the todo done, false to reopen it
- A title, when given, must not be blank
- Returns an error result when no todo has the given ID`

	// DeleteTodoToolDescription is the description for the delete_todo tool
	DeleteTodoToolDescription = `Delete a todo item.

Usage:
- todo_id is required
- Deletion is permanent
- Returns an error result when no todo has the given ID, including a todo that was already deleted`
)
