package api

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LambdaHandler serves API Gateway HTTP API (v2) events.
type LambdaHandler func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

// NewLambdaHandler adapts the router for AWS Lambda.
func NewLambdaHandler(mux *chi.Mux, logger *zap.Logger) LambdaHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	adapter := chiadapter.NewV2(mux)

	return func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		resp, err := adapter.ProxyWithContextV2(ctx, req)
		if err != nil {
			logger.Error("Lambda proxy failed",
				zap.String("method", req.RequestContext.HTTP.Method),
				zap.String("path", req.RequestContext.HTTP.Path),
				zap.String("request_id", req.RequestContext.RequestID),
				zap.Error(err),
			)
			return resp, err
		}

		if resp.Headers == nil {
			resp.Headers = make(map[string]string)
		}
		if req.RequestContext.RequestID != "" {
			resp.Headers["X-Request-ID"] = req.RequestContext.RequestID
		}
		return resp, nil
	}
}
