package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/d-kuro/todo-mcp/internal/errors"
	"github.com/d-kuro/todo-mcp/internal/todo"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// CreateTodoRequest represents the request body for creating a todo
type CreateTodoRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// UpdateTodoRequest represents the request body for updating a todo.
// Absent or null fields are left unchanged.
type UpdateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// TodoHandler handles todo-related HTTP requests
type TodoHandler struct {
	todos  todo.Service
	logger *zap.Logger
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(todos todo.Service, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{
		todos:  todos,
		logger: logger,
	}
}

// CreateTodo handles POST /todos
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := todo.Validate(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	t, err := h.todos.Create(r.Context(), todo.CreateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, t)
}

// ListTodos handles GET /todos
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todos.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if todos == nil {
		todos = []todo.Todo{}
	}

	respondJSON(w, http.StatusOK, todos)
}

// GetTodo handles GET /todos/{todoID}
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	t, err := h.todos.Get(r.Context(), chi.URLParam(r, "todoID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, t)
}

// UpdateTodo handles PATCH /todos/{todoID}
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	var req UpdateTodoRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	t, err := h.todos.Update(r.Context(), chi.URLParam(r, "todoID"), todo.Patch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, t)
}

// DeleteTodo handles DELETE /todos/{todoID}
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	if err := h.todos.Delete(r.Context(), chi.URLParam(r, "todoID")); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Validationf("invalid request body: %v", err)
	}
	return nil
}
