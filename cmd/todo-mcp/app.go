package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/d-kuro/todo-mcp/internal/config"
	"github.com/d-kuro/todo-mcp/internal/logging"
	"github.com/d-kuro/todo-mcp/internal/storage"
	"github.com/d-kuro/todo-mcp/internal/todo"
)

// globalFlags holds the persistent flags shared by every command.
// Set flags override values from the environment.
type globalFlags struct {
	envFile   string
	logLevel  string
	logFormat string
	store     string
	table     string
	endpoint  string
	region    string
}

var globals = &globalFlags{}

func loadConfig(c *cobra.Command) (*config.Config, error) {
	var files []string
	if globals.envFile != "" {
		files = append(files, globals.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}

	flags := c.Flags()
	override := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	override("log-level", &cfg.LogLevel, globals.logLevel)
	override("log-format", &cfg.LogFormat, globals.logFormat)
	override("store", &cfg.Store, globals.store)
	override("table", &cfg.TableName, globals.table)
	override("endpoint", &cfg.DynamoDBEndpoint, globals.endpoint)
	override("region", &cfg.AWSRegion, globals.region)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logging.Logger {
	return logging.New(cfg.LogLevel, cfg.LogFormat)
}

// newTodoService builds the service over the configured store. The DynamoDB
// client is created once here and shared for the life of the process.
func newTodoService(ctx context.Context, cfg *config.Config, logger *logging.Logger) (todo.Service, error) {
	var table storage.Table[todo.Todo]
	switch cfg.Store {
	case config.StoreMemory:
		logger.Warn("Using in-memory store, todos are lost on exit")
		table = storage.NewMemoryTable[todo.Todo](cfg.TableName, todo.AttrID)
	default:
		client, err := storage.NewDynamoDBClient(ctx, storage.ClientOptions{
			Region:   cfg.AWSRegion,
			Endpoint: cfg.DynamoDBEndpoint,
		})
		if err != nil {
			return nil, err
		}
		table = storage.NewDynamoTable[todo.Todo](client, cfg.TableName, todo.AttrID, logger.Named("storage").Zap())
	}

	return todo.NewService(table, todo.WithLogger(logger.Named("todo"))), nil
}
