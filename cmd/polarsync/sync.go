// ABOUTME: CLI command for pulling Polar data into the local store.
// ABOUTME: Runs the full exercise and physical-info pipeline.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/polarsync/internal/etl"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull exercises and body metrics from Polar",
	Long: `Pull training data from the Polar AccessLink API into the local store.

WHAT HAPPENS:

  1. Every available exercise is fetched. Ordinary sessions land in the
     sessions table; fitness and orthostatic tests land as daily metrics
     (resting HR, HRV RMSSD, VO2max).
  2. Pending physical-information snapshots (weight, resting HR, VO2max)
     are consumed and merged into the daily metrics. When none are
     available, the profile weight is used as a fallback.
  3. Slowly-changing metrics (weight, resting HR, VO2max) are carried
     forward onto the most recent day so the latest row is never blank.

Re-running is safe: sessions are overwritten by ID and metrics are merged
field by field, never clearing stored values.

Requires polar_access_token (and polar_user_id for body metrics) in the
config, or POLAR_ACCESS_TOKEN in the environment.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.GetPolarAccessToken() == "" {
			return fmt.Errorf("polar access token not configured: set polar_access_token in the config file or POLAR_ACCESS_TOKEN in the environment")
		}

		service := etl.NewService(cfg.PolarClient(), store, cfg.PolarUserID)
		result, err := service.Run(cmd.Context())
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		color.Green("✓ Sync complete (run %s)", result.RunID)
		fmt.Printf("  %d sessions, %d fitness tests, %d body metric snapshots\n",
			result.Sessions, result.FitnessTests, result.PhysicalInfos)
		if result.Skipped > 0 {
			fmt.Printf("  %d records skipped (no identity or date)\n", result.Skipped)
		}
		for _, w := range result.Warnings {
			color.Yellow("⚠ %s", w)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
