// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docmark/internal/engine"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the conversion engine is installed and working",
	Long: `Check looks for the configured engine binary on PATH and asks it for
its version. Run this once after installation; convert itself handles a
missing engine per file rather than failing up front.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := engineConfig()
		version, err := engine.New(cfg).Check(cmd.Context())
		if err != nil {
			return fmt.Errorf("engine check failed: %w\ninstall Pandoc: https://pandoc.org/installing.html", err)
		}
		fmt.Printf("engine ok: %s\n", version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
