// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package orchestrator

import (
	"time"

	"github.com/matt-FFFFFF/decks/internal/catalog"
	"github.com/matt-FFFFFF/decks/internal/job"
)

// Report aggregates the outcome of one build run.
type Report struct {
	RunID       string
	DryRun      bool
	Outcomes    []job.Outcome   // One per planned topic, in catalog order.
	UpToDate    []catalog.Topic // Not rebuilt because nothing was stale.
	Interrupted bool            // The build context was cancelled before Run returned.
	Duration    time.Duration
}

// Failed reports whether any topic failed.
func (r Report) Failed() bool {
	for _, o := range r.Outcomes {
		if o.Failed() {
			return true
		}
	}

	return false
}

// Count returns the number of outcomes with status s.
func (r Report) Count(s job.Status) int {
	n := 0

	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}

	return n
}

// ExitCode is 0 when every selected topic completed or was skipped, and 1 when any
// topic failed or the run was interrupted.
func (r Report) ExitCode() int {
	if r.Failed() || r.Interrupted || r.Count(job.StatusCancelled) > 0 {
		return 1
	}

	return 0
}
