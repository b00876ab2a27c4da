// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine invokes the external document-conversion engine, one
// process per task, and translates exit status into a result value.
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/pdiddy/docmark/pkg/types"
)

const (
	// DefaultBinary is the engine executable used when none is configured.
	DefaultBinary = "pandoc"

	// DefaultStderrLimit caps captured engine stderr at 64 KiB.
	DefaultStderrLimit = 64 << 10
)

// Invoker runs the engine once for a task and always returns a result,
// even when the engine fails or is missing.
type Invoker interface {
	Invoke(ctx context.Context, task types.ConversionTask) types.ConversionResult
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stderr io.Writer) error
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Run(ctx context.Context, name string, args []string, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = stderr
	return cmd.Run()
}

func (osExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Engine invokes the configured external binary. It satisfies Invoker.
type Engine struct {
	cfg  types.EngineConfig
	exec executor
}

// New creates an Engine from cfg, filling in binary and stderr-cap
// defaults.
func New(cfg types.EngineConfig) *Engine {
	return newEngine(cfg, osExecutor{})
}

func newEngine(cfg types.EngineConfig, exec executor) *Engine {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.StderrLimit <= 0 {
		cfg.StderrLimit = DefaultStderrLimit
	}
	return &Engine{cfg: cfg, exec: exec}
}

// Invoke runs one engine process for task and waits for it to exit. The
// argument list is `<input> --output <output>` followed by the engine's
// configured default arguments and then the task's extra arguments,
// verbatim and in order. Success requires exit status zero and a
// non-empty output file. Invoke never returns an error; every failure is
// recorded in the result.
func (e *Engine) Invoke(ctx context.Context, task types.ConversionTask) types.ConversionResult {
	start := time.Now()
	result := types.ConversionResult{Task: task}

	fail := func(kind types.FailureKind, diagnostic string) types.ConversionResult {
		result.Failure = kind
		result.Diagnostic = diagnostic
		result.Elapsed = time.Since(start)
		return result
	}

	if err := os.MkdirAll(filepath.Dir(task.OutputPath), 0o755); err != nil {
		return fail(types.FailureOutputDirUnwritable,
			fmt.Sprintf("cannot create output directory: %v", err))
	}

	args := make([]string, 0, 3+len(e.cfg.DefaultArgs)+len(task.ExtraArgs))
	args = append(args, task.InputPath, "--output", task.OutputPath)
	args = append(args, e.cfg.DefaultArgs...)
	args = append(args, task.ExtraArgs...)

	stderr := &boundedBuffer{limit: e.cfg.StderrLimit}
	if err := e.exec.Run(ctx, e.cfg.Binary, args, stderr); err != nil {
		if isNotFound(err) {
			return fail(types.FailureEngineNotFound,
				fmt.Sprintf("engine %q not found on PATH; install it to enable conversion", e.cfg.Binary))
		}
		diagnostic := stderr.String()
		if diagnostic == "" {
			diagnostic = err.Error()
		}
		return fail(types.FailureEngineExit, diagnostic)
	}

	// An engine that exits zero without producing output still counts as
	// a failure; an empty Markdown file is never a useful conversion.
	info, err := os.Stat(task.OutputPath)
	if err != nil || info.Size() == 0 {
		return fail(types.FailureEmptyOutput,
			fmt.Sprintf("engine exited zero but %s is missing or empty", task.OutputPath))
	}

	result.Success = true
	result.Diagnostic = stderr.String()
	result.Elapsed = time.Since(start)
	return result
}

func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist)
}

// boundedBuffer captures writes up to limit bytes and drops the rest,
// appending a truncation marker so pathological engine output cannot
// grow memory without bound.
type boundedBuffer struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	room := b.limit - b.buf.Len()
	if room <= 0 {
		b.truncated = true
		return len(p), nil
	}
	if len(p) > room {
		b.buf.Write(p[:room])
		b.truncated = true
		return len(p), nil
	}
	b.buf.Write(p)
	return len(p), nil
}

func (b *boundedBuffer) String() string {
	if b.truncated {
		return fmt.Sprintf("%s\n[stderr truncated at %d bytes]", b.buf.String(), b.limit)
	}
	return b.buf.String()
}
