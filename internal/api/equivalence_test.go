package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-kuro/todo-mcp/internal/api"
	"github.com/d-kuro/todo-mcp/internal/storage"
	"github.com/d-kuro/todo-mcp/internal/todo"
	todotools "github.com/d-kuro/todo-mcp/internal/tools/todo"
)

func seededService(t *testing.T) todo.Service {
	t.Helper()
	svc := todo.NewService(
		storage.NewMemoryTable[todo.Todo]("todos", todo.AttrID),
		todo.WithClock(func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }),
		todo.WithIDGenerator(func() string { return "fixed-id" }),
	)
	_, err := svc.Create(context.Background(), todo.CreateInput{Title: "Original", Description: "desc"})
	require.NoError(t, err)
	return svc
}

// The MCP update_todo tool and REST PATCH must leave the store in the same
// state for the same logical change.
func TestMCPUpdateMatchesRESTPatch(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		body string
	}{
		{"completed only", `{"completed":true}`},
		{"title only", `{"title":"  Renamed "}`},
		{"description cleared", `{"description":""}`},
		{"everything", `{"title":"T","description":"D","completed":true}`},
		{"nothing", `{}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			restSvc := seededService(t)
			srv := httptest.NewServer(api.NewRouter(restSvc, api.Options{}).Setup())
			defer srv.Close()

			req, err := http.NewRequest(http.MethodPatch, srv.URL+"/todos/fixed-id", strings.NewReader(tc.body))
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)

			mcpSvc := seededService(t)
			var args todotools.UpdateTodoArgs
			require.NoError(t, json.Unmarshal([]byte(tc.body), &args))
			args.TodoID = "fixed-id"
			result, err := todotools.NewHandlers(mcpSvc).Update(ctx, nil, &mcp.CallToolParamsFor[todotools.UpdateTodoArgs]{Arguments: args})
			require.NoError(t, err)
			require.False(t, result.IsError)

			viaREST, err := restSvc.Get(ctx, "fixed-id")
			require.NoError(t, err)
			viaMCP, err := mcpSvc.Get(ctx, "fixed-id")
			require.NoError(t, err)

			assert.Equal(t, viaREST.Title, viaMCP.Title)
			assert.Equal(t, viaREST.Description, viaMCP.Description)
			assert.Equal(t, viaREST.Completed, viaMCP.Completed)
			assert.True(t, viaREST.CreatedAt.Equal(viaMCP.CreatedAt))
		})
	}
}
