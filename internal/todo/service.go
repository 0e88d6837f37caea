package todo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/d-kuro/todo-mcp/internal/errors"
	"github.com/d-kuro/todo-mcp/internal/logging"
	"github.com/d-kuro/todo-mcp/internal/storage"
)

// Service is the set of todo operations shared by every front-end.
type Service interface {
	Create(ctx context.Context, in CreateInput) (Todo, error)
	List(ctx context.Context) ([]Todo, error)
	Get(ctx context.Context, id string) (Todo, error)
	Update(ctx context.Context, id string, patch Patch) (Todo, error)
	Delete(ctx context.Context, id string) error
}

// TodoService implements Service on top of a storage.Table.
type TodoService struct {
	table  storage.Table[Todo]
	logger *logging.Logger
	now    func() time.Time
	newID  func() string
}

var _ Service = (*TodoService)(nil)

// Option configures a TodoService.
type Option func(*TodoService)

// WithLogger sets the service logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *TodoService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *TodoService) { s.now = now }
}

// WithIDGenerator replaces the ID source.
func WithIDGenerator(newID func() string) Option {
	return func(s *TodoService) { s.newID = newID }
}

// NewService creates a TodoService backed by table.
func NewService(table storage.Table[Todo], opts ...Option) *TodoService {
	s := &TodoService{
		table:  table,
		logger: logging.NewNop(),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new, uncompleted Todo with a fresh ID and creation time.
func (s *TodoService) Create(ctx context.Context, in CreateInput) (Todo, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := Validate(in); err != nil {
		return Todo{}, err
	}

	t := Todo{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Completed:   false,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.table.Put(ctx, t); err != nil {
		return Todo{}, errors.Wrap(err, "create todo")
	}

	s.logger.Info("Created todo", "id", t.ID)
	return t, nil
}

// List returns every Todo in store order.
func (s *TodoService) List(ctx context.Context) ([]Todo, error) {
	todos, err := s.table.Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list todos")
	}
	return todos, nil
}

// Get returns the Todo with the given ID.
func (s *TodoService) Get(ctx context.Context, id string) (Todo, error) {
	if err := checkID(id); err != nil {
		return Todo{}, err
	}

	t, err := s.table.Get(ctx, id)
	if err != nil {
		return Todo{}, notFoundAs(err, id)
	}
	return t, nil
}

// Update applies patch to an existing Todo and returns the result.
// An empty patch returns the current Todo unchanged.
func (s *TodoService) Update(ctx context.Context, id string, patch Patch) (Todo, error) {
	if err := checkID(id); err != nil {
		return Todo{}, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return Todo{}, errors.Validation("title must not be blank")
		}
		patch.Title = &title
	}

	if patch.IsEmpty() {
		return s.Get(ctx, id)
	}

	t, err := s.table.Update(ctx, id, patch.fields())
	if err != nil {
		return Todo{}, notFoundAs(err, id)
	}

	s.logger.Info("Updated todo", "id", id)
	return t, nil
}

// Delete removes the Todo with the given ID. Deleting a missing Todo fails
// with errors.ErrNotFound.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	if err := s.table.Delete(ctx, id); err != nil {
		return notFoundAs(err, id)
	}

	s.logger.Info("Deleted todo", "id", id)
	return nil
}

func checkID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.Validation("id must not be blank")
	}
	return nil
}

// notFoundAs rewrites a store-level miss in domain terms and passes every
// other error through.
func notFoundAs(err error, id string) error {
	if errors.Is(err, errors.ErrNotFound) {
		return errors.NotFound("todo", id)
	}
	return err
}
