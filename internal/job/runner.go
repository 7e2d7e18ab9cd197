// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package job

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/matt-FFFFFF/decks/internal/artifact"
	"github.com/matt-FFFFFF/decks/internal/catalog"
	"github.com/matt-FFFFFF/decks/internal/ctxlog"
	"github.com/matt-FFFFFF/decks/internal/metrics"
	"github.com/matt-FFFFFF/decks/internal/variant"
	"github.com/spf13/afero"
)

var (
	// ErrWorkspace is returned when the topic directory or its source document is missing.
	ErrWorkspace = errors.New("workspace error")
	// ErrNotADirectory is returned when the topic directory path is a regular file.
	ErrNotADirectory = errors.New("not a directory")
)

// ErrJobPanic is returned when a job panics. It holds the recovered value.
type ErrJobPanic struct {
	v any
}

// Error implements the error interface.
func (e *ErrJobPanic) Error() string {
	switch x := e.v.(type) {
	case error:
		return "job panic: " + x.Error()
	default:
		return fmt.Sprintf("job panic: %v", x)
	}
}

// Unwrap returns the recovered value when it is an error.
func (e *ErrJobPanic) Unwrap() error {
	if err, ok := e.v.(error); ok {
		return err
	}

	return nil
}

// VariantRenderer renders every format of one variant of a topic.
type VariantRenderer interface {
	RenderVariant(ctx context.Context, t catalog.Topic, v artifact.Variant, configPath string) ([]artifact.Artifact, error)
}

// Runner runs tasks against topics under Root.
type Runner struct {
	FS       afero.Fs
	Root     string
	Variants VariantRenderer
	Recorder metrics.Recorder
}

// New returns a Runner. A nil recorder disables metrics.
func New(fs afero.Fs, root string, vr VariantRenderer, rec metrics.Recorder) *Runner {
	return &Runner{FS: fs, Root: root, Variants: vr, Recorder: metrics.OrNoop(rec)}
}

// Run executes task and returns its outcome. It never panics.
func (r *Runner) Run(ctx context.Context, task Task) (out Outcome) {
	start := time.Now()
	out = Outcome{Topic: task.Topic}

	ctx = ctxlog.With(ctx, "topic", task.Topic.Name)

	defer func() {
		if p := recover(); p != nil {
			ctxlog.Error(ctx, "job panicked", "panic", p)

			out.Status = StatusFailed
			out.Err = &ErrJobPanic{v: p}
		}

		out.Duration = time.Since(start)
		r.Recorder.IncTopicOutcome(out.Status.String())
		ctxlog.Debug(ctx, "job finished", "status", out.Status.String(), "duration", out.Duration)
	}()

	if err := r.checkWorkspace(task); err != nil {
		ctxlog.Error(ctx, "workspace check failed", "error", err)

		out.Status = StatusFailed
		out.Err = err

		return out
	}

	if task.DryRun {
		ctxlog.Info(ctx, "dry run, would render", "artifacts", len(artifact.Expected(task.Topic)))

		out.Status = StatusSkipped

		return out
	}

	for _, v := range artifact.Variants {
		done, err := r.Variants.RenderVariant(ctx, task.Topic, v, task.ConfigPath)
		out.Artifacts = append(out.Artifacts, done...)

		if err == nil {
			continue
		}

		out.Err = err

		if errors.Is(err, variant.ErrCancelled) {
			ctxlog.Warn(ctx, "job cancelled", "variant", string(v))

			out.Status = StatusCancelled
		} else {
			out.Status = StatusFailed
		}

		return out
	}

	out.Status = StatusCompleted

	return out
}

func (r *Runner) checkWorkspace(task Task) error {
	dir := task.Topic.Dir(r.Root)

	info, err := r.FS.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: topic directory %s: %w", ErrWorkspace, dir, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s: %w", ErrWorkspace, dir, ErrNotADirectory)
	}

	src := artifact.SourcePath(r.Root, task.Topic)
	if _, err := r.FS.Stat(src); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: source document %s does not exist", ErrWorkspace, src)
		}

		return fmt.Errorf("%w: source document %s: %w", ErrWorkspace, src, err)
	}

	return nil
}
