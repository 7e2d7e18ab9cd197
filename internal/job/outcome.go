// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package job

import (
	"time"

	"github.com/matt-FFFFFF/decks/internal/artifact"
	"github.com/matt-FFFFFF/decks/internal/catalog"
)

// Status is the final state of a task.
type Status int

const (
	// StatusSkipped is reported for a dry run.
	StatusSkipped Status = iota
	// StatusCompleted means all four artifacts were rendered.
	StatusCompleted
	// StatusCancelled means cancellation was observed before the task finished.
	StatusCancelled
	// StatusFailed means a workspace error, a render failure or a panic.
	StatusFailed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Task is the unit of work submitted to the pool. It is not mutated once created.
type Task struct {
	Topic      catalog.Topic
	ConfigPath string
	DryRun     bool
}

// Outcome is the result of running one Task.
type Outcome struct {
	Topic     catalog.Topic
	Status    Status
	Err       error               // Set for StatusFailed, and for StatusCancelled.
	Artifacts []artifact.Artifact // Artifacts written by this task, in render order.
	Duration  time.Duration
}

// Failed reports whether the outcome counts against the exit status.
func (o Outcome) Failed() bool {
	return o.Status == StatusFailed
}
