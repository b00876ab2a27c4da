// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch plans conversion tasks and drives them through the
// engine sequentially, emitting ordered progress events.
package batch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdiddy/docmark/pkg/types"
)

// markdownExt is the extension given to every output file.
const markdownExt = ".md"

// BuildTasks maps discovered input files to conversion tasks. With no
// output-dir override each output is written alongside its input with the
// Markdown extension; with an override all outputs land in cfg.OutputDir.
// Two inputs resolving to the same output path abort planning before any
// task starts.
func BuildTasks(files []string, cfg types.BatchConfig) ([]types.ConversionTask, error) {
	tasks := make([]types.ConversionTask, 0, len(files))
	outputs := make(map[string]string, len(files))

	for _, in := range files {
		out := outputPath(in, cfg.OutputDir)
		if prev, clash := outputs[out]; clash {
			return nil, fmt.Errorf("output collision: %s and %s both map to %s", prev, in, out)
		}
		outputs[out] = in

		tasks = append(tasks, types.ConversionTask{
			InputPath:  in,
			OutputPath: out,
			ExtraArgs:  cfg.ExtraArgs,
		})
	}
	return tasks, nil
}

func outputPath(input, outputDir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + markdownExt
	if outputDir == "" {
		return filepath.Join(filepath.Dir(input), base)
	}
	return filepath.Join(outputDir, base)
}
