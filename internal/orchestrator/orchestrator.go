// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/decks/internal/catalog"
	"github.com/matt-FFFFFF/decks/internal/ctxlog"
	"github.com/matt-FFFFFF/decks/internal/job"
	"github.com/matt-FFFFFF/decks/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// ErrNotStarted is the error of a topic that was still queued when the build was cancelled.
var ErrNotStarted = errors.New("not started: build was cancelled")

// StalenessChecker decides whether a topic needs rebuilding.
type StalenessChecker interface {
	IsStale(t catalog.Topic) (bool, error)
}

// TaskRunner runs a single task to completion.
type TaskRunner interface {
	Run(ctx context.Context, task job.Task) job.Outcome
}

// Options control a build run.
type Options struct {
	ConfigPath  string // Shared render configuration, passed unmodified to every render.
	Tool        string // Render tool name or path.
	DryRun      bool
	Parallelism int // Upper bound on concurrent jobs. Zero or less uses runtime.GOMAXPROCS(0).
}

// Plan is the outcome of topic selection.
type Plan struct {
	Selection Selection
	Topics    []catalog.Topic // To build, in catalog order.
	UpToDate  []catalog.Topic // Skipped by stale-only selection, in catalog order.
}

// Orchestrator plans and runs builds over a catalog.
type Orchestrator struct {
	Catalog  *catalog.Catalog
	Checker  StalenessChecker
	Runner   TaskRunner
	Recorder metrics.Recorder
}

// New returns an Orchestrator. A nil recorder disables metrics.
func New(cat *catalog.Catalog, checker StalenessChecker, runner TaskRunner, rec metrics.Recorder) *Orchestrator {
	return &Orchestrator{
		Catalog:  cat,
		Checker:  checker,
		Runner:   runner,
		Recorder: metrics.OrNoop(rec),
	}
}

// Plan resolves sel against the catalog. Unknown names in an explicit selection are
// all reported in a single ErrConfiguration error and nothing is planned.
func (o *Orchestrator) Plan(ctx context.Context, sel Selection) (Plan, error) {
	plan := Plan{Selection: sel}

	switch sel.Mode {
	case ModeAll:
		plan.Topics = o.Catalog.All()

	case ModeExplicit:
		var merr *multierror.Error

		requested := make(map[string]struct{}, len(sel.Names))

		for _, name := range sel.Names {
			if _, err := o.Catalog.ByName(name); err != nil {
				merr = multierror.Append(merr, fmt.Errorf("%w: %q", ErrUnknownTopic, name))
				continue
			}

			requested[name] = struct{}{}
		}

		if err := merr.ErrorOrNil(); err != nil {
			return Plan{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}

		for _, t := range o.Catalog.All() {
			if _, ok := requested[t.Name]; ok {
				plan.Topics = append(plan.Topics, t)
			}
		}

	case ModeStale:
		for _, t := range o.Catalog.All() {
			stale, err := o.Checker.IsStale(t)
			if err != nil {
				// The job reports the workspace problem as a failure.
				ctxlog.Warn(ctx, "could not check staleness", "topic", t.Name, "error", err)

				stale = true
			}

			if !stale {
				ctxlog.Info(ctx, "up to date", "topic", t.Name)

				plan.UpToDate = append(plan.UpToDate, t)

				continue
			}

			plan.Topics = append(plan.Topics, t)
		}

	default:
		return Plan{}, fmt.Errorf("%w: unknown selection mode %d", ErrConfiguration, sel.Mode)
	}

	ctxlog.Debug(ctx, "build plan",
		"mode", sel.Mode.String(),
		"build", len(plan.Topics),
		"upToDate", len(plan.UpToDate))

	return plan, nil
}

// Run builds every planned topic on a bounded worker pool and waits for all started jobs.
// Once ctx is cancelled no further job starts; those topics report job.StatusCancelled
// with ErrNotStarted.
func (o *Orchestrator) Run(ctx context.Context, plan Plan, opts Options) Report {
	start := time.Now()
	runID := uuid.NewString()
	ctx = ctxlog.With(ctx, "runID", runID)

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	workers := min(len(plan.Topics), parallelism)
	o.Recorder.SetWorkers(workers)

	for range plan.UpToDate {
		o.Recorder.IncUpToDate()
	}

	ctxlog.Info(ctx, "starting build",
		"topics", len(plan.Topics),
		"upToDate", len(plan.UpToDate),
		"workers", workers,
		"dryRun", opts.DryRun)

	outcomes := make([]job.Outcome, len(plan.Topics))
	submitted := 0

	if workers > 0 {
		g := new(errgroup.Group)
		g.SetLimit(workers)

		for i, t := range plan.Topics {
			if ctx.Err() != nil {
				break
			}

			task := job.Task{Topic: t, ConfigPath: opts.ConfigPath, DryRun: opts.DryRun}

			// Go blocks until a worker is free, so cancellation may arrive while waiting.
			g.Go(func() error {
				if ctx.Err() != nil {
					outcomes[i] = o.notStarted(task.Topic)
					return nil
				}

				outcomes[i] = o.Runner.Run(ctx, task)

				return nil
			})

			submitted++
		}

		_ = g.Wait()
	}

	for i := submitted; i < len(plan.Topics); i++ {
		outcomes[i] = o.notStarted(plan.Topics[i])
	}

	rep := Report{
		RunID:       runID,
		DryRun:      opts.DryRun,
		Outcomes:    outcomes,
		UpToDate:    slices.Clone(plan.UpToDate),
		Interrupted: ctx.Err() != nil,
		Duration:    time.Since(start),
	}

	o.Recorder.ObserveRunDuration(rep.Duration)

	ctxlog.Info(ctx, "build finished",
		"failed", rep.Count(job.StatusFailed),
		"cancelled", rep.Count(job.StatusCancelled),
		"interrupted", rep.Interrupted,
		"duration", rep.Duration.Round(time.Millisecond))

	return rep
}

// Build plans sel and runs it. The error is non-nil only for configuration problems,
// in which case no work was started.
func (o *Orchestrator) Build(ctx context.Context, sel Selection, opts Options) (Report, error) {
	plan, err := o.Plan(ctx, sel)
	if err != nil {
		return Report{}, err
	}

	return o.Run(ctx, plan, opts), nil
}

func (o *Orchestrator) notStarted(t catalog.Topic) job.Outcome {
	o.Recorder.IncTopicOutcome(job.StatusCancelled.String())

	return job.Outcome{Topic: t, Status: job.StatusCancelled, Err: ErrNotStarted}
}
