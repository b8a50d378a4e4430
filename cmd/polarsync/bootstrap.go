// ABOUTME: CLI command for one-time creation of the Notion coaching database.
// ABOUTME: Optionally saves the new database ID into the config file.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/polarsync/internal/notion"
)

var bootstrapSave bool

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap <parent-page-id>",
	Short: "Create the Notion coaching database",
	Long: `Create the "Running Progress & Coaching" database under an existing
Notion page.

STEPS:

  1. Create a page in Notion (or pick an existing one) and share it with
     your integration.
  2. Copy the page ID from the URL: the 32-character hex string between
     notion.so/ and the ?.
  3. Run:

     polarsync bootstrap <page-id> --save

The database gets Week (title), Date, Status, Weekly Goal, Progress
Notes, Action Items, Distance This Week, Sessions This Week, and Next
Week Focus properties. With --save the new database ID is written to
notion_running_db_id in the config file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cfg.NotionClient()
		if err != nil {
			return err
		}

		databaseID, err := notion.CreateCoachingDatabase(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}

		color.Green("✓ Coaching database created")
		fmt.Printf("  database ID: %s\n", databaseID)
		fmt.Printf("  URL: https://www.notion.so/%s\n", databaseID)

		if bootstrapSave {
			cfg.NotionRunningDBID = databaseID
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			color.Green("✓ Saved notion_running_db_id to config")
		} else {
			fmt.Println("\nAdd this to your config file:")
			fmt.Printf("  \"notion_running_db_id\": %q\n", databaseID)
		}
		return nil
	},
}

func init() {
	bootstrapCmd.Flags().BoolVar(&bootstrapSave, "save", false, "save the database ID to the config file")
	rootCmd.AddCommand(bootstrapCmd)
}
