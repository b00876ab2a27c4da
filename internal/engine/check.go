// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"
	"strings"
)

// Check verifies that the engine binary exists on PATH and responds to
// --version. It returns the engine's version line on success.
func (e *Engine) Check(ctx context.Context) (string, error) {
	if _, err := e.exec.LookPath(e.cfg.Binary); err != nil {
		return "", fmt.Errorf("engine %q not found on PATH: %w", e.cfg.Binary, err)
	}

	out, err := e.exec.Output(ctx, e.cfg.Binary, "--version")
	if err != nil {
		return "", fmt.Errorf("engine %q is installed but not working: %w", e.cfg.Binary, err)
	}

	version := strings.TrimSpace(string(out))
	if i := strings.IndexByte(version, '\n'); i >= 0 {
		version = version[:i]
	}
	return version, nil
}
