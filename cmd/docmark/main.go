// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docmark CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the docmark CLI.
var rootCmd = &cobra.Command{
	Use:   "docmark",
	Short: "Batch document-to-Markdown conversion via an external engine",
	Long: `docmark converts word-processing documents into Markdown by driving an
external conversion engine (Pandoc by default). It discovers candidate
files, invokes the engine once per file, and reports per-file progress and
an aggregated summary.

Document parsing and Markdown rendering belong entirely to the engine;
docmark owns discovery, sequential invocation, and reporting.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docmark.yaml or ~/.config/docmark/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docmark")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docmark"))
		}
	}

	viper.SetDefault("engine.binary", "pandoc")
	viper.SetDefault("engine.default_args", []string{"--wrap=none"})
	viper.SetDefault("discovery.extension", ".docx")

	viper.SetEnvPrefix("DOCMARK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
