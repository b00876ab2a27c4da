// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docmark/pkg/types"
)

// fakeExecutor implements executor for testing. runFn stands in for the
// engine process; it can write stderr and create the output file.
type fakeExecutor struct {
	lookErr   error
	runFn     func(stderr io.Writer) error
	output    []byte
	outputErr error

	gotName string
	gotArgs []string
}

func (f *fakeExecutor) LookPath(string) (string, error) {
	if f.lookErr != nil {
		return "", f.lookErr
	}
	return "/usr/bin/pandoc", nil
}

func (f *fakeExecutor) Run(_ context.Context, name string, args []string, stderr io.Writer) error {
	f.gotName = name
	f.gotArgs = args
	if f.runFn != nil {
		return f.runFn(stderr)
	}
	return nil
}

func (f *fakeExecutor) Output(context.Context, string, ...string) ([]byte, error) {
	return f.output, f.outputErr
}

func taskFor(t *testing.T, extraArgs ...string) types.ConversionTask {
	t.Helper()
	dir := t.TempDir()
	return types.ConversionTask{
		InputPath:  filepath.Join(dir, "report.docx"),
		OutputPath: filepath.Join(dir, "report.md"),
		ExtraArgs:  extraArgs,
	}
}

func TestInvoke_ArgumentOrder(t *testing.T) {
	task := taskFor(t, "--toc", "--standalone")
	fake := &fakeExecutor{runFn: func(io.Writer) error {
		return os.WriteFile(task.OutputPath, []byte("# Report"), 0o644)
	}}
	eng := newEngine(types.EngineConfig{DefaultArgs: []string{"--wrap=none"}}, fake)

	result := eng.Invoke(context.Background(), task)

	require.True(t, result.Success)
	assert.Equal(t, DefaultBinary, fake.gotName)
	assert.Equal(t, []string{
		task.InputPath, "--output", task.OutputPath,
		"--wrap=none",
		"--toc", "--standalone",
	}, fake.gotArgs)
	assert.Equal(t, types.FailureNone, result.Failure)
}

func TestInvoke_NonZeroExitCapturesStderr(t *testing.T) {
	task := taskFor(t)
	fake := &fakeExecutor{runFn: func(stderr io.Writer) error {
		io.WriteString(stderr, "pandoc: could not parse docx\n")
		return errors.New("exit status 64")
	}}

	result := newEngine(types.EngineConfig{}, fake).Invoke(context.Background(), task)

	require.False(t, result.Success)
	assert.Equal(t, types.FailureEngineExit, result.Failure)
	assert.Contains(t, result.Diagnostic, "could not parse docx")
}

func TestInvoke_EngineNotFound(t *testing.T) {
	task := taskFor(t)
	fake := &fakeExecutor{runFn: func(io.Writer) error {
		return &exec.Error{Name: "pandoc", Err: exec.ErrNotFound}
	}}

	result := newEngine(types.EngineConfig{}, fake).Invoke(context.Background(), task)

	require.False(t, result.Success)
	assert.Equal(t, types.FailureEngineNotFound, result.Failure)
	assert.Contains(t, result.Diagnostic, "pandoc")
}

func TestInvoke_ZeroExitWithoutOutputIsFailure(t *testing.T) {
	tests := []struct {
		name  string
		runFn func(task types.ConversionTask) error
	}{
		{
			name:  "output missing",
			runFn: func(types.ConversionTask) error { return nil },
		},
		{
			name: "output empty",
			runFn: func(task types.ConversionTask) error {
				return os.WriteFile(task.OutputPath, nil, 0o644)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := taskFor(t)
			fake := &fakeExecutor{runFn: func(io.Writer) error { return tt.runFn(task) }}

			result := newEngine(types.EngineConfig{}, fake).Invoke(context.Background(), task)

			require.False(t, result.Success)
			assert.Equal(t, types.FailureEmptyOutput, result.Failure)
		})
	}
}

func TestInvoke_OutputDirUnwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	task := types.ConversionTask{
		InputPath:  filepath.Join(dir, "report.docx"),
		OutputPath: filepath.Join(blocker, "sub", "report.md"),
	}
	fake := &fakeExecutor{}

	result := newEngine(types.EngineConfig{}, fake).Invoke(context.Background(), task)

	require.False(t, result.Success)
	assert.Equal(t, types.FailureOutputDirUnwritable, result.Failure)
	assert.Empty(t, fake.gotName, "engine must not be invoked when the output dir cannot be created")
}

func TestBoundedBuffer_Truncates(t *testing.T) {
	buf := &boundedBuffer{limit: 16}

	n, err := buf.Write([]byte(strings.Repeat("e", 100)))
	require.NoError(t, err)
	assert.Equal(t, 100, n, "writes past the cap are swallowed, not errored")

	out := buf.String()
	assert.Contains(t, out, "truncated at 16 bytes")
	assert.Contains(t, out, strings.Repeat("e", 16))
}

func TestCheck(t *testing.T) {
	t.Run("reports version first line", func(t *testing.T) {
		fake := &fakeExecutor{output: []byte("pandoc 3.1.9\nCompiled with texmath\n")}
		version, err := newEngine(types.EngineConfig{}, fake).Check(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "pandoc 3.1.9", version)
	})

	t.Run("missing binary", func(t *testing.T) {
		fake := &fakeExecutor{lookErr: exec.ErrNotFound}
		_, err := newEngine(types.EngineConfig{}, fake).Check(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found on PATH")
	})

	t.Run("binary present but broken", func(t *testing.T) {
		fake := &fakeExecutor{outputErr: errors.New("exit status 2")}
		_, err := newEngine(types.EngineConfig{}, fake).Check(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not working")
	})
}
