// ABOUTME: Root Cobra command for the polarsync CLI.
// ABOUTME: Loads config and opens the local store via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/polarsync/internal/config"
	"github.com/harperreed/polarsync/internal/storage"
)

var (
	cfg   *config.Config
	store *storage.DB
)

var rootCmd = &cobra.Command{
	Use:   "polarsync",
	Short: "Sync Polar training data to a local store and Notion",
	Long: `Polarsync pulls training data from the Polar AccessLink API into a
local SQLite database and exchanges coaching data with Notion.

WHAT IT SYNCS:

  Sessions   runs and other exercises (distance, duration, heart rate, load)
  Metrics    daily resting HR, HRV (RMSSD), VO2max, weight, sleep hours
  Coaching   weekly goal/progress pages in a Notion database

QUICK START:

  $ polarsync sync                      # Pull exercises and body metrics from Polar
  $ polarsync list sessions             # See recent sessions
  $ polarsync list metrics              # See recent daily metrics
  $ polarsync sleep                     # Pull sleep hours from a Notion tracker
  $ polarsync week --week "Week of 2025-11-04" --goal "Build base"

CONFIGURATION:

  Config lives at ~/.config/polarsync/config.json:

  {
    "polar_access_token": "...",
    "polar_user_id": "...",
    "notion_secret": "secret_...",
    "notion_running_db_id": "...",
    "notion_sleep_db_id": "..."
  }

  POLAR_ACCESS_TOKEN and NOTION_SECRET environment variables override
  the file. Run 'polarsync bootstrap <page-id>' once to create the
  coaching database in Notion.

MCP INTEGRATION:

  Run 'polarsync mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "polarsync": { "command": "polarsync", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Sessions and metrics are stored in SQLite at ~/.local/share/polarsync/polar.db.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Bootstrap and inspect only talk to Notion.
		if cmd.Name() == "bootstrap" || cmd.Name() == "inspect" {
			return nil
		}

		store, err = cfg.OpenStore()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
