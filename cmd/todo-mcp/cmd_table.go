package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/d-kuro/todo-mcp/internal/storage"
	"github.com/d-kuro/todo-mcp/internal/todo"
)

var tableOpts struct {
	recreate    bool
	waitTimeout time.Duration
}

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Manage the DynamoDB table",
}

var tableCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the todos table if it does not exist",
	Long: `Creates the configured table with on-demand billing and a string hash key "id",
then waits until it is active. With --recreate an existing table is deleted first.`,
	RunE: runTableCreate,
}

func init() {
	tableCreateCmd.Flags().BoolVar(&tableOpts.recreate, "recreate", false, "Delete and recreate the table if it exists")
	tableCreateCmd.Flags().DurationVar(&tableOpts.waitTimeout, "wait-timeout", 2*time.Minute, "How long to wait for the table to become active")
	tableCmd.AddCommand(tableCreateCmd)
}

func runTableCreate(c *cobra.Command, args []string) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	defer logger.Sync()

	ctx := c.Context()
	client, err := storage.NewDynamoDBClient(ctx, storage.ClientOptions{
		Region:   cfg.AWSRegion,
		Endpoint: cfg.DynamoDBEndpoint,
	})
	if err != nil {
		return err
	}

	created, err := storage.EnsureTable(ctx, client, storage.TableSpec{
		Name:        cfg.TableName,
		KeyAttr:     todo.AttrID,
		Recreate:    tableOpts.recreate,
		WaitTimeout: tableOpts.waitTimeout,
	}, logger.Named("storage").Zap())
	if err != nil {
		logger.Error("Failed to create table", "table", cfg.TableName, "error", err)
		return err
	}

	if created {
		fmt.Fprintf(c.OutOrStdout(), "Table %q created\n", cfg.TableName)
	} else {
		fmt.Fprintf(c.OutOrStdout(), "Table %q already exists\n", cfg.TableName)
	}
	return nil
}
