// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"context"
	"time"

	"github.com/pdiddy/docmark/internal/engine"
	"github.com/pdiddy/docmark/pkg/types"
)

// Runner drives an Invoker across a task sequence. Tasks run strictly in
// order, one at a time, on a single worker goroutine, so the caller's
// context (CLI loop or a UI event loop) is never blocked for the batch
// duration.
type Runner struct {
	invoker engine.Invoker
}

// NewRunner creates a Runner backed by inv.
func NewRunner(inv engine.Invoker) *Runner {
	return &Runner{invoker: inv}
}

// Run starts the batch and returns the event channel. The worker emits a
// started event before each task, a completed event after it, and a single
// finished event carrying a frozen report snapshot, then closes the
// channel. Events arrive in strict submission order.
//
// Cancellation is checked between tasks: once ctx is done, no further task
// is submitted, the report keeps only the results gathered so far, and the
// finished event carries the partial flag. An in-flight engine process is
// terminated through the context and recorded as a failed result.
func (r *Runner) Run(ctx context.Context, tasks []types.ConversionTask) <-chan types.ProgressEvent {
	events := make(chan types.ProgressEvent, 1)

	go func() {
		defer close(events)

		report := types.BatchReport{StartedAt: time.Now()}
		total := len(tasks)

		for i, task := range tasks {
			if ctx.Err() != nil {
				report.Partial = true
				break
			}

			events <- types.ProgressEvent{
				Kind:  types.EventStarted,
				Task:  task,
				Index: i + 1,
				Total: total,
			}

			result := r.invoker.Invoke(ctx, task)
			report.Results = append(report.Results, result)

			events <- types.ProgressEvent{
				Kind:   types.EventCompleted,
				Result: result,
				Index:  i + 1,
				Total:  total,
			}
		}

		report.Elapsed = time.Since(report.StartedAt)
		events <- types.ProgressEvent{
			Kind:   types.EventFinished,
			Report: report.Snapshot(),
		}
	}()

	return events
}
