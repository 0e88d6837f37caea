package main

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/d-kuro/todo-mcp/internal/api"
	"github.com/d-kuro/todo-mcp/internal/config"
	"github.com/d-kuro/todo-mcp/internal/errors"
	"github.com/d-kuro/todo-mcp/internal/logging"
)

var apiOpts struct {
	addr    string
	origins []string
}

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the todo REST API over HTTP",
	RunE:  runAPI,
}

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Serve the todo REST API as an AWS Lambda handler",
	Long:  `Handles API Gateway HTTP API (payload v2) events. Run inside the Lambda runtime.`,
	RunE:  runLambda,
}

func init() {
	apiCmd.Flags().StringVar(&apiOpts.addr, "addr", "", "Listen address (default :8000)")
	apiCmd.Flags().StringSliceVar(&apiOpts.origins, "cors-origins", nil, "Allowed CORS origins (default *)")
}

func buildRouter(c *cobra.Command, cfg *config.Config, logger *logging.Logger) (*api.Router, error) {
	svc, err := newTodoService(c.Context(), cfg, logger)
	if err != nil {
		return nil, err
	}

	origins := cfg.CORSAllowedOrigins
	if c.Flags().Changed("cors-origins") {
		origins = apiOpts.origins
	}
	return api.NewRouter(svc, api.Options{
		Logger:         logger.Named("api").Zap(),
		AllowedOrigins: origins,
	}), nil
}

func runAPI(c *cobra.Command, args []string) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	defer logger.Sync()

	addr := cfg.ServerAddress
	if c.Flags().Changed("addr") {
		addr = apiOpts.addr
	}

	router, err := buildRouter(c, cfg, logger)
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(c.Context())
	g.Go(func() error {
		logger.Info("REST API listening", "addr", addr, "store", cfg.Store, "table", cfg.TableName)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen on %s", addr)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("Shutting down REST API")
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("REST API stopped with error", "error", err)
		return err
	}
	logger.Info("REST API stopped")
	return nil
}

func runLambda(c *cobra.Command, args []string) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	router, err := buildRouter(c, cfg, logger)
	if err != nil {
		return err
	}
	lambda.Start(api.NewLambdaHandler(router.Setup(), logger.Named("lambda").Zap()))
	return nil
}
