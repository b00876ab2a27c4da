// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docmark/pkg/types"
)

// WriteReport writes the finished report to path, as JSON when the path
// ends in .json and as YAML when it ends in .yaml or .yml.
func WriteReport(report types.BatchReport, path string) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(report, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(report)
	default:
		return fmt.Errorf("unsupported report format %q: use .json, .yaml, or .yml", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
