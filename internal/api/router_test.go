package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-kuro/todo-mcp/internal/storage"
	"github.com/d-kuro/todo-mcp/internal/todo"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := todo.NewService(storage.NewMemoryTable[todo.Todo]("todos", todo.AttrID))
	srv := httptest.NewServer(NewRouter(svc, Options{}).Setup())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestRootAndHealth(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]string{"status": "ok", "service": ServiceName}, decode[map[string]string](t, resp))

	resp = do(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]string{"status": "healthy"}, decode[map[string]string](t, resp))
}

func TestTodoRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/todos", `{"title":"Buy milk","description":"2L"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[todo.Todo](t, resp)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Completed)
	assert.False(t, created.CreatedAt.IsZero())

	resp = do(t, http.MethodGet, srv.URL+"/todos/"+created.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[todo.Todo](t, resp)
	assert.Equal(t, created.Title, got.Title)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

	resp = do(t, http.MethodPatch, srv.URL+"/todos/"+created.ID, `{"completed":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	patched := decode[todo.Todo](t, resp)
	assert.True(t, patched.Completed)
	assert.Equal(t, "Buy milk", patched.Title)
	assert.Equal(t, "2L", patched.Description)

	resp = do(t, http.MethodGet, srv.URL+"/todos", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]todo.Todo](t, resp), 1)

	resp = do(t, http.MethodDelete, srv.URL+"/todos/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/todos/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, ErrorResponse{Detail: "Todo not found", Type: "not_found"}, decode[ErrorResponse](t, resp))

	resp = do(t, http.MethodDelete, srv.URL+"/todos/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListEmptyIsArray(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/todos", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(body)))
}

func TestBadRequests(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"missing title", http.MethodPost, "/todos", `{"description":"x"}`},
		{"blank title", http.MethodPost, "/todos", `{"title":"   "}`},
		{"malformed json", http.MethodPost, "/todos", `{"title":`},
		{"wrong type", http.MethodPost, "/todos", `{"title":42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, srv.URL+tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			body := decode[ErrorResponse](t, resp)
			assert.Equal(t, "validation", body.Type)
			assert.NotEmpty(t, body.Detail)
		})
	}

	resp := do(t, http.MethodGet, srv.URL+"/todos", "")
	assert.Empty(t, decode[[]todo.Todo](t, resp), "rejected creates persist nothing")
}

func TestPatchValidation(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/todos", `{"title":"keep"}`)
	created := decode[todo.Todo](t, resp)

	resp = do(t, http.MethodPatch, srv.URL+"/todos/"+created.ID, `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPatch, srv.URL+"/todos/missing", `{"completed":true}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// null fields are ignored
	resp = do(t, http.MethodPatch, srv.URL+"/todos/"+created.ID, `{"title":null,"description":"new"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	patched := decode[todo.Todo](t, resp)
	assert.Equal(t, "keep", patched.Title)
	assert.Equal(t, "new", patched.Description)
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/todos", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	do(t, http.MethodGet, srv.URL+"/todos", "")
	do(t, http.MethodGet, srv.URL+"/todos/abc", "")

	resp := do(t, http.MethodGet, srv.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Regexp(t, `todo_http_requests_total\{method="GET",route="/todos/?",status="200"\} 1`, string(body))
	assert.Contains(t, string(body), `todo_http_requests_total{method="GET",route="/todos/{todoID}",status="404"} 1`)
}

func TestRecoverer(t *testing.T) {
	svc := panickingService{}
	srv := httptest.NewServer(NewRouter(svc, Options{}).Setup())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/todos", "application/json", bytes.NewBufferString(`{"title":"x"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	metrics := do(t, http.MethodGet, srv.URL+"/metrics", "")
	body, err := io.ReadAll(metrics.Body)
	require.NoError(t, err)
	assert.Regexp(t, `todo_http_requests_total\{method="POST",route="/todos/?",status="500"\} 1`, string(body))
}

type panickingService struct{ todo.Service }

func (panickingService) Create(_ context.Context, _ todo.CreateInput) (todo.Todo, error) {
	panic("boom")
}
