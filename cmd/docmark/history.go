// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docmark/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversion runs",
	Long: `History lists recent batch runs recorded in the local history
database, newest first, with per-run success and failure counts.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum number of runs to list (default 20)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.NewStore(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No conversion runs recorded yet.")
		return nil
	}

	for _, r := range runs {
		partial := ""
		if r.Partial {
			partial = " (partial)"
		}
		fmt.Printf("#%d  %s  %d converted, %d failed (total: %d)%s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime),
			r.Succeeded, r.Failed, r.Total, partial)
	}
	return nil
}
