// ABOUTME: CLI command for writing a weekly coaching entry to Notion.
// ABOUTME: Optionally rolls up distance and session count from the store.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/polarsync/internal/models"
	"github.com/harperreed/polarsync/internal/notion"
)

var (
	weekName     string
	weekStatus   string
	weekGoal     string
	weekNotes    string
	weekItems    string
	weekDistance float64
	weekSessions int
	weekFocus    string
	weekStart    string
	weekCreate   bool
	weekRollup   bool
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Write a weekly coaching entry to Notion",
	Long: `Create or update this week's page in the Notion coaching database.

Pages are matched by their exact Week title. An existing page is updated
in place; only the fields you pass are touched, so earlier notes survive.
Use --create-new to always add a fresh page instead.

ROLLUP:

  With --rollup and --start, distance and session count are computed from
  the local store over the seven days starting at --start:

  $ polarsync week --week "Week of 2025-11-04" --start 2025-11-04 --rollup \
      --notes "Legs felt heavy on Tuesday"

STATUS VALUES:

  Not started / In progress / Done. The planning names Planning,
  In Progress, and Completed are mapped automatically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.NotionRunningDBID == "" {
			return fmt.Errorf("coaching database not configured: run 'polarsync bootstrap' or set notion_running_db_id in the config file")
		}

		client, err := cfg.NotionClient()
		if err != nil {
			return err
		}

		entry := models.WeekEntry{
			Week:        weekName,
			Status:      weekStatus,
			ActionItems: notion.SplitActionItems(weekItems),
		}
		if weekGoal != "" {
			entry.Goal = &weekGoal
		}
		if weekNotes != "" {
			entry.Notes = &weekNotes
		}
		if weekFocus != "" {
			entry.NextFocus = &weekFocus
		}
		if weekStart != "" {
			entry.StartDate = &weekStart
		}
		if cmd.Flags().Changed("distance") {
			entry.DistanceKM = &weekDistance
		}
		if cmd.Flags().Changed("sessions") {
			entry.SessionCount = &weekSessions
		}

		if weekRollup {
			if weekStart == "" {
				return fmt.Errorf("--rollup requires --start")
			}
			summary, err := store.SummarizeWeek(weekStart)
			if err != nil {
				return fmt.Errorf("failed to summarize week: %w", err)
			}
			if entry.DistanceKM == nil {
				entry.DistanceKM = &summary.DistanceKM
			}
			if entry.SessionCount == nil {
				entry.SessionCount = &summary.Sessions
			}
		}

		result := notion.UpsertWeek(cmd.Context(), client, cfg.NotionRunningDBID, entry, !weekCreate)
		if !result.Success {
			return fmt.Errorf("week entry failed: %s", result.Err)
		}

		color.Green("✓ Week %s (%s)", result.Action, result.Week)
		fmt.Printf("  page: %s\n", result.PageID)
		return nil
	},
}

func init() {
	weekCmd.Flags().StringVarP(&weekName, "week", "w", "", "week identifier, e.g. \"Week of 2025-11-04\"")
	weekCmd.Flags().StringVar(&weekStatus, "status", "", "status (Not started, In progress, Done)")
	weekCmd.Flags().StringVar(&weekGoal, "goal", "", "main goal for the week")
	weekCmd.Flags().StringVar(&weekNotes, "notes", "", "progress notes")
	weekCmd.Flags().StringVar(&weekItems, "action-items", "", "action items, comma or newline separated")
	weekCmd.Flags().Float64Var(&weekDistance, "distance", 0, "total distance this week in km")
	weekCmd.Flags().IntVar(&weekSessions, "sessions", 0, "number of sessions this week")
	weekCmd.Flags().StringVar(&weekFocus, "focus", "", "next week's focus")
	weekCmd.Flags().StringVar(&weekStart, "start", "", "week start date (YYYY-MM-DD)")
	weekCmd.Flags().BoolVar(&weekCreate, "create-new", false, "always create a new page instead of updating")
	weekCmd.Flags().BoolVar(&weekRollup, "rollup", false, "fill distance and sessions from the local store")
	weekCmd.MarkFlagRequired("week")
	rootCmd.AddCommand(weekCmd)
}
