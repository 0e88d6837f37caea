// Package client is an HTTP client for the todo REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/d-kuro/todo-mcp/internal/errors"
	"github.com/d-kuro/todo-mcp/internal/todo"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Detail     string
	Type       string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Detail)
}

// Unwrap exposes the error kind so callers can test with errors.Is.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return errors.ErrNotFound
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return errors.ErrValidation
	default:
		return errors.ErrInternal
	}
}

// Client talks to one API base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for baseURL. timeout bounds each request.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Health checks that the API answers.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// List fetches every todo.
func (c *Client) List(ctx context.Context) ([]todo.Todo, error) {
	var todos []todo.Todo
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &todos); err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []todo.Todo{}
	}
	return todos, nil
}

// Get fetches one todo.
func (c *Client) Get(ctx context.Context, id string) (todo.Todo, error) {
	var t todo.Todo
	err := c.do(ctx, http.MethodGet, todoPath(id), nil, &t)
	return t, err
}

// Create adds a todo.
func (c *Client) Create(ctx context.Context, in todo.CreateInput) (todo.Todo, error) {
	var t todo.Todo
	err := c.do(ctx, http.MethodPost, "/todos", in, &t)
	return t, err
}

// Update patches a todo and returns the stored result.
func (c *Client) Update(ctx context.Context, id string, patch todo.Patch) (todo.Todo, error) {
	var t todo.Todo
	err := c.do(ctx, http.MethodPatch, todoPath(id), patch, &t)
	return t, err
}

// Delete removes a todo.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, todoPath(id), nil, nil)
}

func todoPath(id string) string {
	return "/todos/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errors.InternalWithCause("encode request", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.InternalWithCause("build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Detail string `json:"detail"`
			Type   string `json:"type"`
		}
		if json.NewDecoder(resp.Body).Decode(&payload) == nil {
			apiErr.Detail, apiErr.Type = payload.Detail, payload.Type
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.InternalWithCause("decode response", err)
	}
	return nil
}
