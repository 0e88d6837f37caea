package todo

import (
	"fmt"
	"strings"
	"time"

	"github.com/d-kuro/todo-mcp/internal/todo"
)

const (
	glyphDone    = "✓"
	glyphPending = "○"

	// listDescriptionLimit bounds descriptions in list output, in runes.
	listDescriptionLimit = 100
)

var markdownStripper = strings.NewReplacer("**", "", "*", "", "#", "")

// stripMarkdown removes emphasis and heading markers so descriptions read
// cleanly in plain-text tool output.
func stripMarkdown(s string) string {
	return markdownStripper.Replace(s)
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

func formatCreated(t todo.Todo) string {
	return fmt.Sprintf("%s Created todo: %s\nID: %s", glyphDone, t.Title, t.ID)
}

func formatList(todos []todo.Todo) string {
	if len(todos) == 0 {
		return "No todos found."
	}

	lines := []string{fmt.Sprintf("Found %d todo(s):\n", len(todos))}
	for i, t := range todos {
		status := glyphPending
		if t.Completed {
			status = glyphDone
		}
		lines = append(lines, fmt.Sprintf("%d. %s %s", i+1, status, t.Title))
		if t.Description != "" {
			lines = append(lines, "   "+truncate(stripMarkdown(t.Description), listDescriptionLimit))
		}
		lines = append(lines, fmt.Sprintf("   ID: %s\n", t.ID))
	}
	return strings.Join(lines, "\n")
}

func formatDetail(t todo.Todo) string {
	status := glyphPending + " Pending"
	if t.Completed {
		status = glyphDone + " Completed"
	}
	desc := stripMarkdown(t.Description)
	if desc == "" {
		desc = "No description"
	}

	return fmt.Sprintf("Todo: %s\nStatus: %s\nDescription: %s\nCreated: %s\nID: %s",
		t.Title, status, desc, t.CreatedAt.Format(time.RFC3339), t.ID)
}

func formatUpdated(t todo.Todo) string {
	return fmt.Sprintf("%s Updated: %s", glyphDone, t.Title)
}

func formatDeleted() string {
	return glyphDone + " Todo deleted"
}
