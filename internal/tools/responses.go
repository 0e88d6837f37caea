// Package tools provides centralized response utilities for MCP tool handlers.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/todo-mcp/internal/errors"
)

// ServiceErrorResponse turns a service error into a tool-level error result.
// Validation and not-found messages reach the caller verbatim; anything else
// is reduced to its kind so store internals stay in the server log.
func ServiceErrorResponse(err error) *mcp.CallToolResultFor[any] {
	kind := errors.Kind(err)

	var message string
	switch kind {
	case "validation", "not_found":
		message = err.Error()
	case "store_unavailable":
		message = "todo store is unavailable"
	default:
		kind = "internal"
		message = "internal error"
	}

	return NewResponse().
		WithText("Error: " + message).
		WithMeta("error_type", kind).
		AsError().
		Build()
}

// ResponseBuilder provides a fluent interface for building responses.
type ResponseBuilder struct {
	content []mcp.Content
	meta    map[string]any
	isError bool
}

// NewResponse creates a new response builder.
func NewResponse() *ResponseBuilder {
	return &ResponseBuilder{
		content: make([]mcp.Content, 0),
		meta:    make(map[string]any),
		isError: false,
	}
}

// WithText adds text content to the response.
func (rb *ResponseBuilder) WithText(text string) *ResponseBuilder {
	rb.content = append(rb.content, &mcp.TextContent{Text: text})
	return rb
}

// WithTextf adds formatted text content to the response.
func (rb *ResponseBuilder) WithTextf(format string, args ...any) *ResponseBuilder {
	return rb.WithText(fmt.Sprintf(format, args...))
}

// WithJSON adds data as an indented JSON text block.
func (rb *ResponseBuilder) WithJSON(data any) *ResponseBuilder {
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return rb.WithTextf("Error: failed to marshal JSON: %v", err).AsError()
	}
	return rb.WithText(string(jsonBytes))
}

// WithMeta adds metadata to the response.
func (rb *ResponseBuilder) WithMeta(key string, value any) *ResponseBuilder {
	rb.meta[key] = value
	return rb
}

// AsError marks the response as an error.
func (rb *ResponseBuilder) AsError() *ResponseBuilder {
	rb.isError = true
	return rb
}

// Build creates the final MCP response.
func (rb *ResponseBuilder) Build() *mcp.CallToolResultFor[any] {
	response := &mcp.CallToolResultFor[any]{
		Content: rb.content,
		IsError: rb.isError,
	}

	if len(rb.meta) > 0 {
		response.Meta = rb.meta
	}

	return response
}
