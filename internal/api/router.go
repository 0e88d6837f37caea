// Package api implements the REST front-end for the todo service.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/d-kuro/todo-mcp/internal/todo"
)

// ServiceName is reported by the root endpoint.
const ServiceName = "todo-api"

// Options configures the router.
type Options struct {
	Logger *zap.Logger
	// AllowedOrigins for CORS. Empty means any origin.
	AllowedOrigins []string
	// Metrics may be shared with other components; one is created when nil.
	Metrics *Metrics
}

// Router creates and configures the HTTP router
type Router struct {
	todos   todo.Service
	logger  *zap.Logger
	origins []string
	metrics *Metrics
}

// NewRouter creates a new router instance
func NewRouter(todos todo.Service, opts Options) *Router {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics("todo")
	}

	return &Router{
		todos:   todos,
		logger:  logger,
		origins: origins,
		metrics: metrics,
	}
}

// Setup configures all routes and middleware. It returns the concrete mux so
// the Lambda adapter can wrap it.
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(requestLogger(rt.logger))
	router.Use(rt.metrics.Middleware)
	// Inside the logger and metrics so a recovered panic is recorded as a 500.
	router.Use(chimiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/", rt.root)
	router.Get("/health", rt.healthCheck)
	router.Handle("/metrics", rt.metrics.Handler())

	h := NewTodoHandler(rt.todos, rt.logger)
	router.Route("/todos", func(r chi.Router) {
		r.Post("/", h.CreateTodo)
		r.Get("/", h.ListTodos)
		r.Get("/{todoID}", h.GetTodo)
		r.Patch("/{todoID}", h.UpdateTodo)
		r.Delete("/{todoID}", h.DeleteTodo)
	})

	return router
}

// root identifies the service.
func (rt *Router) root(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": ServiceName})
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
