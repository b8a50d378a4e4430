// ABOUTME: CLI commands for listing stored sessions and daily metrics.
// ABOUTME: Plain tabular output with faint secondary fields.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	listSessionsLimit int
	listMetricsLimit  int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List stored sessions and metrics",
}

var listSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recent training sessions",
	Long: `List recent sessions from the local store, newest first.

Each line shows: START  SPORT  DISTANCE  DURATION  HR  (DEVICE)

EXAMPLES:

  polarsync list sessions          # Last 20 sessions
  polarsync list sessions -n 50    # Last 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := store.ListSessions(listSessionsLimit)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions found. Run 'polarsync sync' first.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, s := range sessions {
			hr := "-"
			if s.AvgHR != nil {
				hr = fmt.Sprintf("%d", *s.AvgHR)
				if s.MaxHR != nil {
					hr = fmt.Sprintf("%d/%d", *s.AvgHR, *s.MaxHR)
				}
			}
			fmt.Printf("%s %s %7.2f km %9s %7s bpm %s\n",
				faint.Sprint(s.TsStart),
				padRight(s.Sport, 14),
				s.DistanceM/1000.0,
				formatDuration(s.DurationS),
				hr,
				faint.Sprintf("(%s)", s.Device))
		}
		return nil
	},
}

var listMetricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "List recent daily metrics",
	Long: `List recent daily metric rows, newest first.

Each line shows: DATE  RHR  HRV  VO2MAX  WEIGHT  SLEEP

A dash means no source has reported that value for the day yet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := store.ListMetricDays(listMetricsLimit)
		if err != nil {
			return fmt.Errorf("failed to list metrics: %w", err)
		}
		if len(days) == 0 {
			fmt.Println("No metrics found. Run 'polarsync sync' or 'polarsync sleep' first.")
			return nil
		}

		faint := color.New(color.Faint)
		fmt.Printf("%s %6s %6s %7s %7s %6s\n",
			padRight("date", 10), "rhr", "hrv", "vo2max", "weight", "sleep")
		for _, d := range days {
			fmt.Printf("%s %6s %6s %7s %7s %6s\n",
				faint.Sprint(d.Date),
				formatMetric(d.RestingHR, "%.0f"),
				formatMetric(d.HRVRMSSD, "%.0f"),
				formatMetric(d.VO2Max, "%.0f"),
				formatMetric(d.WeightKG, "%.1f"),
				formatMetric(d.SleepHours, "%.1f"))
		}
		return nil
	},
}

func formatMetric(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func formatDuration(seconds float64) string {
	s := int(seconds)
	if s >= 3600 {
		return fmt.Sprintf("%dh%02dm", s/3600, (s%3600)/60)
	}
	return fmt.Sprintf("%dm%02ds", s/60, s%60)
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	listSessionsCmd.Flags().IntVarP(&listSessionsLimit, "limit", "n", 20, "max number of results")
	listMetricsCmd.Flags().IntVarP(&listMetricsLimit, "limit", "n", 20, "max number of results")
	listCmd.AddCommand(listSessionsCmd)
	listCmd.AddCommand(listMetricsCmd)
	rootCmd.AddCommand(listCmd)
}
