// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared value types passed between docmark
// stages: conversion tasks, per-file results, batch reports, and the
// progress events the orchestrator emits.
package types

import "time"

// FailureKind classifies why a single conversion task failed.
type FailureKind string

const (
	// FailureNone marks a successful result.
	FailureNone FailureKind = ""

	// FailureOutputDirUnwritable means the output parent directory could
	// not be created.
	FailureOutputDirUnwritable FailureKind = "output_dir_unwritable"

	// FailureEngineNotFound means the engine binary could not be launched.
	FailureEngineNotFound FailureKind = "engine_not_found"

	// FailureEngineExit means the engine ran but exited non-zero.
	FailureEngineExit FailureKind = "engine_exit"

	// FailureEmptyOutput means the engine exited zero but wrote a missing
	// or empty output file.
	FailureEmptyOutput FailureKind = "empty_output"
)

// ConversionTask describes one engine invocation. Tasks are built once
// when a batch is planned and never mutated.
type ConversionTask struct {
	// InputPath is the absolute path to the input document.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputPath is the resolved Markdown output path.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// ExtraArgs are engine arguments appended verbatim, in order, after
	// the required input/output arguments.
	ExtraArgs []string `json:"extra_args,omitempty" yaml:"extra_args,omitempty"`
}

// ConversionResult is the outcome of one engine invocation. Exactly one
// result is produced per submitted task.
type ConversionResult struct {
	// Task is the originating task.
	Task ConversionTask `json:"task" yaml:"task"`

	// Success reports whether the engine exited zero and wrote a
	// non-empty output file.
	Success bool `json:"success" yaml:"success"`

	// Failure classifies the failure; empty on success.
	Failure FailureKind `json:"failure,omitempty" yaml:"failure,omitempty"`

	// Diagnostic is the captured engine stderr (bounded), or a
	// synthesized message when the engine could not be launched.
	Diagnostic string `json:"diagnostic,omitempty" yaml:"diagnostic,omitempty"`

	// Elapsed is the wall-clock duration of the invocation.
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}

// BatchReport accumulates results in submission order. Counts are always
// derived from the result sequence and cannot be set independently.
type BatchReport struct {
	// Results holds one entry per completed task, in submission order.
	Results []ConversionResult `json:"results" yaml:"results"`

	// Partial is set when the batch was cancelled before all tasks ran.
	Partial bool `json:"partial" yaml:"partial"`

	// StartedAt is when the batch began.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Elapsed is the total batch duration.
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Total returns the number of recorded results.
func (r BatchReport) Total() int {
	return len(r.Results)
}

// Succeeded returns the number of successful results.
func (r BatchReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Success {
			n++
		}
	}
	return n
}

// Failed returns the number of failed results.
func (r BatchReport) Failed() int {
	return r.Total() - r.Succeeded()
}

// HasFailures reports whether any task failed.
func (r BatchReport) HasFailures() bool {
	return r.Failed() > 0
}

// Failures returns the failed results in submission order.
func (r BatchReport) Failures() []ConversionResult {
	var out []ConversionResult
	for _, res := range r.Results {
		if !res.Success {
			out = append(out, res)
		}
	}
	return out
}

// Snapshot returns a copy of the report whose result slice is independent
// of the original, so a subscriber can hold it without racing the worker.
func (r BatchReport) Snapshot() BatchReport {
	cp := r
	cp.Results = make([]ConversionResult, len(r.Results))
	copy(cp.Results, r.Results)
	return cp
}

// EventKind tags a ProgressEvent variant.
type EventKind string

const (
	// EventStarted is emitted before a task's engine invocation.
	EventStarted EventKind = "started"

	// EventCompleted is emitted after a task's result is recorded.
	EventCompleted EventKind = "completed"

	// EventFinished is emitted once after the last task (or after
	// cancellation) with the frozen report.
	EventFinished EventKind = "finished"
)

// ProgressEvent is a tagged variant delivered in strict task order.
// Task and Index/Total are set for started events, Result and Index/Total
// for completed events, and Report for the final finished event.
type ProgressEvent struct {
	Kind   EventKind
	Task   ConversionTask
	Result ConversionResult
	Index  int // 1-based position in the task sequence
	Total  int
	Report BatchReport
}
