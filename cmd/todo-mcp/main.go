// Package main implements the todo-mcp executable.
// The root command serves the todo tools over MCP stdio; subcommands run the
// REST API, the Lambda handler, the terminal UI and table provisioning.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/d-kuro/todo-mcp/internal/cmd"
	"github.com/d-kuro/todo-mcp/internal/errors"
	"github.com/d-kuro/todo-mcp/internal/server"
	"github.com/d-kuro/todo-mcp/pkg/version"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()
	if err != nil {
		os.Exit(1)
	}
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "todo-mcp",
	Short: "Todo MCP server",
	Long: `todo-mcp exposes a todo list stored in DynamoDB as Model Context Protocol tools.
Run without a subcommand to serve MCP over stdio.`,
	SilenceUsage: true,
	RunE:         runServer,
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information and exit")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&globals.envFile, "env-file", "", "Load environment variables from this file (default .env)")
	pf.StringVar(&globals.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&globals.logFormat, "log-format", "", "Log format: console or json")
	pf.StringVar(&globals.store, "store", "", "Store backend: dynamodb or memory")
	pf.StringVar(&globals.table, "table", "", "DynamoDB table name")
	pf.StringVar(&globals.endpoint, "endpoint", "", "DynamoDB endpoint override, e.g. http://localhost:8000")
	pf.StringVar(&globals.region, "region", "", "AWS region")

	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(lambdaCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(cmd.NewVersionCmd())
}

// runServer starts the MCP server on stdio
func runServer(c *cobra.Command, args []string) error {
	if versionFlag, _ := c.Flags().GetBool("version"); versionFlag {
		fmt.Fprintln(c.OutOrStdout(), version.GetVersion().String())
		return nil
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	defer logger.Sync()

	ctx := c.Context()
	svc, err := newTodoService(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to create todo service", "error", err)
		return err
	}

	srv, err := server.New(&server.Options{Logger: logger, Todos: svc})
	if err != nil {
		logger.Error("Failed to create server", "error", err)
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("Todo MCP server starting",
		"version", version.GetVersion().Version,
		"store", cfg.Store,
		"table", cfg.TableName,
		"tools_available", srv.GetRegistry().Count(),
	)

	if err := srv.Serve(ctx, mcp.NewStdioTransport()); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Server error", "error", err)
		return err
	}

	logger.Info("Todo MCP server stopped")
	return nil
}
