package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d-kuro/todo-mcp/internal/config"
	"github.com/d-kuro/todo-mcp/internal/errors"
	"github.com/d-kuro/todo-mcp/internal/logging"
	"github.com/d-kuro/todo-mcp/internal/todo"
)

func TestLoadConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("STORE", "dynamodb")
	t.Setenv("TABLE_NAME", "from-env")
	t.Setenv("LOG_LEVEL", "warn")

	c := &cobra.Command{Use: "test"}
	c.Flags().AddFlagSet(rootCmd.PersistentFlags())
	require.NoError(t, c.ParseFlags([]string{"--store", "memory", "--table", "from-flag", "--env-file", t.TempDir() + "/missing.env"}))

	cfg, err := loadConfig(c)
	require.NoError(t, err)
	assert.Equal(t, config.StoreMemory, cfg.Store)
	assert.Equal(t, "from-flag", cfg.TableName)
	assert.Equal(t, "warn", cfg.LogLevel, "unset flags keep the environment value")
}

func TestLoadConfigRejectsUnknownStore(t *testing.T) {
	c := &cobra.Command{Use: "test"}
	c.Flags().AddFlagSet(rootCmd.PersistentFlags())
	require.NoError(t, c.ParseFlags([]string{"--store", "sqlite"}))

	_, err := loadConfig(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))
}

func TestNewTodoServiceMemory(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{Store: config.StoreMemory, TableName: "todos"}

	svc, err := newTodoService(ctx, cfg, logging.NewNop())
	require.NoError(t, err)

	created, err := svc.Create(ctx, todo.CreateInput{Title: "wired"})
	require.NoError(t, err)
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "wired", got.Title)
}

func TestRootCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"api", "lambda", "tui", "table", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}

	create, _, err := rootCmd.Find([]string{"table", "create"})
	require.NoError(t, err)
	assert.Equal(t, "create", create.Name())
	assert.NotNil(t, create.Flags().Lookup("recreate"))
}

func TestRunTUIChecksAPIHealth(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	c := &cobra.Command{Use: "test"}
	c.Flags().AddFlagSet(rootCmd.PersistentFlags())
	c.Flags().AddFlagSet(tuiCmd.Flags())
	c.SetContext(context.Background())
	t.Cleanup(func() {
		tuiCmd.Flags().Lookup("api-url").Changed = false
		tuiOpts.apiURL = ""
	})
	require.NoError(t, c.ParseFlags([]string{
		"--store", "memory",
		"--env-file", t.TempDir() + "/missing.env",
		"--api-url", url,
	}))

	err := runTUI(c, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
	assert.Contains(t, err.Error(), url)
}

func TestVersionFlag(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "todo-mcp")
}
