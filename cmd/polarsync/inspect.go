// ABOUTME: CLI command for inspecting a Notion database's structure.
// ABOUTME: Dumps property names, types, and extracted values per page.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/polarsync/internal/notion"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <database-id>",
	Short: "Inspect a Notion database's pages and properties",
	Long: `Fetch every page of a Notion database and print each property with
its type and extracted value.

Useful for checking what a sleep tracker or coaching database actually
contains before wiring it into the config.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := cfg.NotionClient()
		if err != nil {
			return err
		}

		pages, err := client.QueryDatabase(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Found %d pages\n", len(pages))
		faint := color.New(color.Faint)
		for i, page := range pages {
			fmt.Printf("\nPage %d %s\n", i+1, faint.Sprintf("(%s)", page.ID))
			for name, prop := range page.Properties {
				value := notion.ExtractValue(prop)
				if value == nil {
					fmt.Printf("  %s (%s): %s\n", name, prop.Type, faint.Sprint("<nil>"))
					continue
				}
				fmt.Printf("  %s (%s): %v\n", name, prop.Type, value)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
