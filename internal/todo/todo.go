// Package todo implements the todo domain: the Todo entity and the service
// that both the REST and MCP front-ends call.
package todo

import (
	"time"
)

// Attribute names shared by the JSON and DynamoDB encodings.
const (
	AttrID          = "id"
	AttrTitle       = "title"
	AttrDescription = "description"
	AttrCompleted   = "completed"
	AttrCreatedAt   = "created_at"
)

// Todo is a single item on the list. ID and CreatedAt are assigned once at
// creation and never change.
type Todo struct {
	ID          string    `json:"id" dynamodbav:"id"`
	Title       string    `json:"title" dynamodbav:"title"`
	Description string    `json:"description" dynamodbav:"description"`
	Completed   bool      `json:"completed" dynamodbav:"completed"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
}

// CreateInput carries the caller-supplied fields of a new Todo.
type CreateInput struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description"`
}

// Patch names the fields to change. Nil fields are left untouched.
type Patch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}

// fields returns the attribute map handed to the store.
func (p Patch) fields() map[string]any {
	fields := make(map[string]any, 3)
	if p.Title != nil {
		fields[AttrTitle] = *p.Title
	}
	if p.Description != nil {
		fields[AttrDescription] = *p.Description
	}
	if p.Completed != nil {
		fields[AttrCompleted] = *p.Completed
	}
	return fields
}
