// ABOUTME: CLI command for importing sleep hours from a Notion tracker.
// ABOUTME: Merges parsed sleep durations into the daily metrics table.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/polarsync/internal/notion"
)

var (
	sleepDatabaseID string
	sleepDateField  string
	sleepHoursField string
)

var sleepCmd = &cobra.Command{
	Use:   "sleep",
	Short: "Import sleep hours from a Notion tracker database",
	Long: `Fetch sleep entries from a Notion database and merge them into the
local daily metrics.

The sleep value may be a number property (hours) or a text property in
almost any duration format: "06:19", "6.5", "6,5", "6h30m", "6 hours
30 minutes". Pages without a parseable value are left alone.

After a page's hours are stored, its "Synced to ETL" checkbox is ticked
(when the database has one). Checkbox failures are warnings, not errors.

The database ID comes from --database or notion_sleep_db_id in the config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		databaseID := sleepDatabaseID
		if databaseID == "" {
			databaseID = cfg.NotionSleepDBID
		}
		if databaseID == "" {
			return fmt.Errorf("sleep database not configured: set notion_sleep_db_id in the config file or pass --database")
		}

		client, err := cfg.NotionClient()
		if err != nil {
			return err
		}

		result, err := notion.SyncSleep(cmd.Context(), client, store, databaseID, notion.SleepSyncOptions{
			DateField:  sleepDateField,
			SleepField: sleepHoursField,
		})
		if err != nil {
			return fmt.Errorf("sleep sync failed: %w", err)
		}

		color.Green("✓ Sleep sync complete")
		fmt.Printf("  %d pages, %d stored, %d skipped\n", result.Pages, result.Processed, result.Skipped)
		for _, e := range result.Errors {
			color.Yellow("⚠ %s", e)
		}
		return nil
	},
}

func init() {
	sleepCmd.Flags().StringVarP(&sleepDatabaseID, "database", "d", "", "Notion sleep database ID")
	sleepCmd.Flags().StringVar(&sleepDateField, "date-field", "", "name of the date property (default \"Date\")")
	sleepCmd.Flags().StringVar(&sleepHoursField, "sleep-field", "", "name of the sleep hours property (default \"Sleep Hours\")")
	rootCmd.AddCommand(sleepCmd)
}
