package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-kuro/todo-mcp/internal/storage"
	"github.com/d-kuro/todo-mcp/internal/todo"
)

func lambdaRequest(method, path, body string) events.APIGatewayV2HTTPRequest {
	return events.APIGatewayV2HTTPRequest{
		Version:  "2.0",
		RawPath:  path,
		Body:     body,
		Headers:  map[string]string{"content-type": "application/json"},
		RouteKey: "$default",
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			RequestID: "lambda-req-1",
			Stage:     "$default",
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{
				Method: method,
				Path:   path,
			},
		},
	}
}

func TestLambdaHandler(t *testing.T) {
	ctx := context.Background()
	svc := todo.NewService(storage.NewMemoryTable[todo.Todo]("todos", todo.AttrID))
	handler := NewLambdaHandler(NewRouter(svc, Options{}).Setup(), nil)

	resp, err := handler(ctx, lambdaRequest(http.MethodGet, "/health", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"healthy"}`, resp.Body)
	assert.Equal(t, "lambda-req-1", resp.Headers["X-Request-ID"])

	resp, err = handler(ctx, lambdaRequest(http.MethodPost, "/todos", `{"title":"from lambda"}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created todo.Todo
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &created))
	assert.Equal(t, "from lambda", created.Title)

	resp, err = handler(ctx, lambdaRequest(http.MethodGet, "/todos/"+created.ID, ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = handler(ctx, lambdaRequest(http.MethodGet, "/todos/missing", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
