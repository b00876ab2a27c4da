// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docmark/internal/batch"
	"github.com/pdiddy/docmark/internal/discover"
	"github.com/pdiddy/docmark/internal/engine"
	"github.com/pdiddy/docmark/internal/history"
	"github.com/pdiddy/docmark/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [paths...]",
	Short: "Convert documents to Markdown",
	Long: `Convert resolves the given files and directories to candidate input
documents, then runs the conversion engine once per file, sequentially.
Per-file failures never abort the batch; each failure is recorded with the
engine's captured stderr and listed in the final summary.

Each output is written alongside its input with the .md extension unless
--output-dir is set. Extra engine arguments are forwarded verbatim after
docmark's own input/output arguments, so later arguments win under the
engine's precedence rules.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output-dir", "o", "", "directory for converted Markdown files (default: alongside inputs)")
	convertCmd.Flags().BoolP("recursive", "r", false, "recursively search directories for input documents")
	convertCmd.Flags().StringArray("engine-arg", nil, "extra argument forwarded verbatim to the engine (repeatable)")
	convertCmd.Flags().String("report", "", "write the batch report to this path (.json, .yaml, or .yml)")
	convertCmd.Flags().Bool("no-history", false, "do not record this run in the history database")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more files or directories to convert")
	}

	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir == "" {
		outputDir = viper.GetString("output_dir")
	}
	recursive, _ := cmd.Flags().GetBool("recursive")
	extraArgs, _ := cmd.Flags().GetStringArray("engine-arg")
	reportPath, _ := cmd.Flags().GetString("report")
	noHistory, _ := cmd.Flags().GetBool("no-history")

	discoveryCfg := types.DiscoveryConfig{
		Extension: viper.GetString("discovery.extension"),
		Recursive: recursive,
	}

	files, problems := discover.Discover(args, discoveryCfg)
	for _, p := range problems {
		fmt.Fprintf(os.Stderr, "warning: %s: %s (%s)\n", p.Entry, p.Kind, p.Detail)
	}
	if len(files) == 0 {
		return fmt.Errorf("no convertible documents found")
	}

	tasks, err := batch.BuildTasks(files, types.BatchConfig{
		OutputDir: outputDir,
		ExtraArgs: extraArgs,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := batch.NewRunner(engine.New(engineConfig()))

	fmt.Printf("Found %d document(s) to convert.\n", len(tasks))

	var report types.BatchReport
	for ev := range runner.Run(ctx, tasks) {
		switch ev.Kind {
		case types.EventStarted:
			fmt.Printf("[%d/%d] %s\n", ev.Index, ev.Total, filepath.Base(ev.Task.InputPath))
		case types.EventCompleted:
			if ev.Result.Success {
				fmt.Printf("  converted: %s\n", ev.Result.Task.OutputPath)
			} else {
				fmt.Printf("  failed:    %s\n", ev.Result.Failure)
			}
		case types.EventFinished:
			report = ev.Report
		}
	}

	printSummary(report)

	if reportPath != "" {
		if err := batch.WriteReport(report, reportPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: report write failed: %v\n", err)
		}
	}

	if !noHistory {
		recordHistory(cmd, report)
	}

	if report.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", report.Failed())
	}
	return nil
}

func printSummary(report types.BatchReport) {
	fmt.Printf("\nBatch summary: %d converted, %d failed (total: %d)\n",
		report.Succeeded(), report.Failed(), report.Total())
	if report.Partial {
		fmt.Println("Batch was interrupted; the report covers completed tasks only.")
	}

	for _, f := range report.Failures() {
		fmt.Printf("\nfailed: %s (%s)\n", f.Task.InputPath, f.Failure)
		for _, line := range strings.Split(strings.TrimSpace(f.Diagnostic), "\n") {
			if line != "" {
				fmt.Printf("  %s\n", line)
			}
		}
	}
}

// recordHistory appends the run to the history database. History failures
// are warnings: the conversion outcome stands regardless.
func recordHistory(cmd *cobra.Command, report types.BatchReport) {
	store, err := history.NewStore(historyConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.RecordBatch(cmd.Context(), report); err != nil {
		fmt.Fprintf(os.Stderr, "warning: history write failed: %v\n", err)
	}
}

func engineConfig() types.EngineConfig {
	return types.EngineConfig{
		Binary:      viper.GetString("engine.binary"),
		DefaultArgs: viper.GetStringSlice("engine.default_args"),
	}
}

func historyConfig() types.HistoryConfig {
	return types.HistoryConfig{
		Dir:     viper.GetString("history.dir"),
		MaxRuns: viper.GetInt("history.max_runs"),
	}
}
