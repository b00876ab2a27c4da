// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover resolves a mixed set of file and directory entries
// into the ordered list of convertible input documents.
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/docmark/pkg/types"
)

// DefaultExtension is the input extension used when none is configured.
const DefaultExtension = ".docx"

// ProblemKind classifies a per-entry discovery failure.
type ProblemKind string

const (
	// PathNotFound means the entry does not exist or could not be read.
	PathNotFound ProblemKind = "path_not_found"

	// NotAConvertibleFile means an explicitly named file does not carry
	// the expected input extension.
	NotAConvertibleFile ProblemKind = "not_convertible"
)

// Problem records a discovery failure for one entry. Problems are
// non-fatal: discovery continues with the remaining entries.
type Problem struct {
	Entry  string
	Kind   ProblemKind
	Detail string
}

// Discover resolves entries (files and/or directories) to the deduplicated,
// path-sorted list of input documents matching cfg.Extension. Directory
// entries contribute their immediate children, or the full subtree when
// cfg.Recursive is set. Explicit file entries with a non-matching extension
// and nonexistent paths are reported as Problems for that entry only.
func Discover(entries []string, cfg types.DiscoveryConfig) ([]string, []Problem) {
	ext := cfg.Extension
	if ext == "" {
		ext = DefaultExtension
	}

	seen := make(map[string]bool)
	var files []string
	var problems []Problem

	keep := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = filepath.Clean(path)
		}
		if !seen[abs] {
			seen[abs] = true
			files = append(files, abs)
		}
	}

	for _, entry := range entries {
		info, err := os.Stat(entry)
		if err != nil {
			problems = append(problems, Problem{Entry: entry, Kind: PathNotFound, Detail: err.Error()})
			continue
		}

		if !info.IsDir() {
			if !matchesExt(entry, ext) {
				problems = append(problems, Problem{
					Entry:  entry,
					Kind:   NotAConvertibleFile,
					Detail: "expected extension " + ext,
				})
				continue
			}
			keep(entry)
			continue
		}

		if cfg.Recursive {
			err = filepath.WalkDir(entry, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && matchesExt(path, ext) {
					keep(path)
				}
				return nil
			})
		} else {
			err = listDir(entry, ext, keep)
		}
		if err != nil {
			problems = append(problems, Problem{Entry: entry, Kind: PathNotFound, Detail: err.Error()})
		}
	}

	sort.Strings(files)
	return files, problems
}

// listDir keeps matching regular files among the immediate children of dir.
func listDir(dir, ext string, keep func(string)) error {
	children, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, child := range children {
		if child.IsDir() {
			continue
		}
		if matchesExt(child.Name(), ext) {
			keep(filepath.Join(dir, child.Name()))
		}
	}
	return nil
}

func matchesExt(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}
