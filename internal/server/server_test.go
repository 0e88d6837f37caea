package server

import (
	"context"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-kuro/todo-mcp/internal/logging"
	"github.com/d-kuro/todo-mcp/internal/storage"
	"github.com/d-kuro/todo-mcp/internal/todo"
)

func newTestServer(t *testing.T) (*Server, todo.Service) {
	t.Helper()
	svc := todo.NewService(storage.NewMemoryTable[todo.Todo]("todos", todo.AttrID))
	s, err := New(&Options{Logger: logging.NewNop(), Todos: svc})
	require.NoError(t, err)
	return s, svc
}

func TestNewRequiresService(t *testing.T) {
	_, err := New(&Options{})
	assert.Error(t, err)
}

func TestNewRegistersTodoTools(t *testing.T) {
	s, _ := newTestServer(t)

	assert.Equal(t,
		[]string{"create_todo", "delete_todo", "get_todo", "list_todos", "update_todo"},
		s.GetRegistry().List())
}

func TestServeOverInMemoryTransport(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, svc := newTestServer(t)
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serveErr := make(chan error, 1)
	go func() { serveErr <- s.Serve(ctx, serverTransport) }()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport)
	require.NoError(t, err)

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "create_todo",
		Arguments: map[string]any{"title": "from agent", "description": "via stdio"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	todos, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "from agent", todos[0].Title)

	res, err = cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_todo",
		Arguments: map[string]any{"todo_id": "does-not-exist"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)

	require.NoError(t, cs.Close())
	select {
	case <-serveErr:
	case <-ctx.Done():
		t.Fatal("server did not stop after client closed")
	}
}
