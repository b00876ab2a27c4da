// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// EngineConfig holds settings for the external conversion engine.
type EngineConfig struct {
	// Binary is the engine executable name or path (default "pandoc").
	Binary string `json:"binary" yaml:"binary"`

	// DefaultArgs are engine arguments prepended before user-supplied
	// extra arguments, so later user arguments win under the engine's
	// own precedence rules (default ["--wrap=none"]).
	DefaultArgs []string `json:"default_args" yaml:"default_args"`

	// StderrLimit caps captured engine stderr in bytes (default 64 KiB).
	// Output beyond the cap is truncated with a marker.
	StderrLimit int `json:"stderr_limit" yaml:"stderr_limit"`
}

// DiscoveryConfig holds settings for input file discovery.
type DiscoveryConfig struct {
	// Extension is the expected input extension including the leading
	// dot, matched case-insensitively (default ".docx").
	Extension string `json:"extension" yaml:"extension"`

	// Recursive controls whether directory entries are walked fully or
	// only their immediate children listed.
	Recursive bool `json:"recursive" yaml:"recursive"`
}

// BatchConfig holds settings for one batch run. A fresh value is built
// per run and passed in explicitly, so repeated runs with different
// settings cannot interfere.
type BatchConfig struct {
	// OutputDir overrides where Markdown files are written. When empty,
	// each output is written alongside its input.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// ExtraArgs are forwarded verbatim to every engine invocation after
	// the engine defaults.
	ExtraArgs []string `json:"extra_args" yaml:"extra_args"`
}

// HistoryConfig holds settings for the batch history database.
type HistoryConfig struct {
	// Dir is the directory holding the history database (default
	// ".docmark"). The database file is created inside it.
	Dir string `json:"dir" yaml:"dir"`

	// MaxRuns is the default number of runs listed by the history
	// command (default 20).
	MaxRuns int `json:"max_runs" yaml:"max_runs"`
}
