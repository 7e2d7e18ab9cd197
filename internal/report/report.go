// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report writes the human readable summary of a build run.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/matt-FFFFFF/decks/internal/color"
	"github.com/matt-FFFFFF/decks/internal/job"
	"github.com/matt-FFFFFF/decks/internal/orchestrator"
)

// Options controls what is included in the summary.
type Options struct {
	Colour        bool // Emit ANSI colour codes
	ShowArtifacts bool // List the artifacts written by each topic
	ShowUpToDate  bool // List topics skipped by stale-only selection
}

// DefaultOptions returns the options used by the build command.
func DefaultOptions() *Options {
	return &Options{
		Colour:        color.Enabled(),
		ShowArtifacts: false,
		ShowUpToDate:  true,
	}
}

type writer struct {
	sb   strings.Builder
	opts *Options
}

func (w *writer) paint(s string, codes ...color.Code) string {
	if !w.opts.Colour {
		return s
	}

	return color.Force(s, codes...)
}

func (w *writer) printf(format string, args ...any) {
	fmt.Fprintf(&w.sb, format, args...)
}

// Write writes the per-topic outcomes of rep followed by a one line summary.
func Write(out io.Writer, rep orchestrator.Report, opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}

	w := &writer{opts: opts}

	for _, o := range rep.Outcomes {
		w.outcome(o)
	}

	if opts.ShowUpToDate {
		for _, t := range rep.UpToDate {
			w.printf("%s %s %s\n", w.paint("~", color.FgYellow), w.paint(t.Name, color.Bold), w.paint("up to date", color.Faint))
		}
	}

	w.summary(rep)

	if _, err := io.WriteString(out, w.sb.String()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}

func (w *writer) outcome(o job.Outcome) {
	var mark string

	var codes []color.Code

	switch o.Status {
	case job.StatusCompleted:
		mark, codes = "✓", []color.Code{color.FgGreen}
	case job.StatusSkipped:
		mark, codes = "~", []color.Code{color.FgYellow}
	case job.StatusCancelled:
		mark, codes = "⊘", []color.Code{color.FgMagenta}
	case job.StatusFailed:
		mark, codes = "✗", []color.Code{color.FgRed}
	default:
		mark, codes = "?", []color.Code{color.FgWhite}
	}

	w.printf("%s %s %s", w.paint(mark, codes...), w.paint(o.Topic.Name, append([]color.Code{color.Bold}, codes...)...), o.Status)

	if o.Duration > 0 {
		w.printf(" %s", w.paint(o.Duration.Round(time.Millisecond).String(), color.Faint))
	}

	w.printf("\n")

	if w.opts.ShowArtifacts || o.Status != job.StatusCompleted {
		for _, a := range o.Artifacts {
			w.printf("    %s\n", a.FileName())
		}
	}

	if o.Err != nil {
		label := "➜ Error:"
		if o.Status == job.StatusCancelled {
			label = "➜ Reason:"
		}

		w.printf("  %s %s\n", w.paint(label, codes...), o.Err)
	}
}

func (w *writer) summary(rep orchestrator.Report) {
	parts := []string{
		w.count(rep.Count(job.StatusCompleted), "completed", color.FgGreen),
		w.count(rep.Count(job.StatusFailed), "failed", color.FgRed),
		w.count(rep.Count(job.StatusCancelled), "cancelled", color.FgMagenta),
	}

	if rep.DryRun {
		parts = append(parts, w.count(rep.Count(job.StatusSkipped), "skipped (dry run)", color.FgYellow))
	}

	parts = append(parts, w.count(len(rep.UpToDate), "up to date", color.FgYellow))

	w.printf("\n%s in %s\n", strings.Join(parts, ", "), rep.Duration.Round(time.Millisecond))

	if rep.Interrupted {
		w.printf("%s\n", w.paint("build interrupted", color.Bold, color.FgRed))
	}
}

func (w *writer) count(n int, what string, c color.Code) string {
	s := fmt.Sprintf("%d %s", n, what)
	if n == 0 {
		return s
	}

	return w.paint(s, c)
}
