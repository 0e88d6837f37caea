package main

import (
	"github.com/spf13/cobra"

	"github.com/d-kuro/todo-mcp/internal/client"
	"github.com/d-kuro/todo-mcp/internal/errors"
	"github.com/d-kuro/todo-mcp/internal/tui"
)

var tuiOpts struct {
	apiURL    string
	prefsPath string
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the terminal UI against a running REST API",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiOpts.apiURL, "api-url", "", "REST API base URL (default http://localhost:8000)")
	tuiCmd.Flags().StringVar(&tuiOpts.prefsPath, "prefs", "", "Preferences file (default <user config dir>/todo-mcp/tui.json)")
}

func runTUI(c *cobra.Command, args []string) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if c.Flags().Changed("api-url") {
		cfg.APIURL = tuiOpts.apiURL
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	api := client.New(cfg.APIURL, cfg.ClientTimeout)
	if err := api.Health(c.Context()); err != nil {
		return errors.Wrap(err, "todo API at %s is unreachable", cfg.APIURL)
	}

	prefsPath := tuiOpts.prefsPath
	if prefsPath == "" {
		if prefsPath, err = tui.DefaultPrefsPath(); err != nil {
			return err
		}
	}

	return tui.Run(c.Context(), api, tui.NewPrefsStore(prefsPath))
}
