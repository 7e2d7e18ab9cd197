// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package watch implements the watch command.
package watch

import (
	"context"
	"slices"
	"time"

	"github.com/matt-FFFFFF/decks/cmd/decks/workspace"
	"github.com/matt-FFFFFF/decks/internal/catalog"
	"github.com/matt-FFFFFF/decks/internal/ctxlog"
	"github.com/matt-FFFFFF/decks/internal/orchestrator"
	"github.com/matt-FFFFFF/decks/internal/render"
	"github.com/matt-FFFFFF/decks/internal/report"
	"github.com/matt-FFFFFF/decks/internal/staleness"
	watcher "github.com/matt-FFFFFF/decks/internal/watch"
	"github.com/urfave/cli/v3"
)

const (
	parallelismFlag = "parallelism"
	debounceFlag    = "debounce"
	cliExitStr      = ""
)

// NewWatchCmd returns the command that rebuilds topics as their sources change.
func NewWatchCmd() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Build stale topics, then rebuild each topic whenever its source document changes",
		Description: `Watch runs a stale-only build and then watches every topic directory.
A change to a topic source document rebuilds that topic. Stop with Ctrl-C.`,
		Flags: slices.Concat(workspace.Flags(), workspace.RenderFlags(), []cli.Flag{
			&cli.IntFlag{
				Name:    parallelismFlag,
				Aliases: []string{"p"},
				Usage: "Set the maximum number of topics to build concurrently. " +
					"Defaults to the number of CPU cores available.",
				Value: 0,
			},
			&cli.DurationFlag{
				Name:  debounceFlag,
				Usage: "Wait this long after the last change before building",
				Value: watcher.DefaultDebounce,
			},
		}),
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("Running watch command")

	ws, err := workspace.Open(ctx, cmd)
	if err != nil {
		return workspace.ConfigExit(cmd, err)
	}

	opts, err := workspace.RenderOptions(cmd)
	if err != nil {
		return workspace.ConfigExit(cmd, err)
	}

	opts.Parallelism = cmd.Int(parallelismFlag)

	toolPath, err := orchestrator.Preflight(ws.FS, opts)
	if err != nil {
		return workspace.ConfigExit(cmd, err)
	}

	orch := ws.Orchestrator(render.NewCommandRenderer(toolPath), nil)
	out := cmd.Root().Writer

	rep, err := orch.Build(ctx, orchestrator.Selection{Mode: orchestrator.ModeStale}, opts)
	if err != nil {
		return workspace.ConfigExit(cmd, err)
	}

	if err := report.Write(out, rep, nil); err != nil {
		logger.Error("could not write report", "error", err)
	}

	rebuild := Rebuild(orch, ws.Checker(), opts, func(rep orchestrator.Report) {
		if err := report.Write(out, rep, nil); err != nil {
			logger.Error("could not write report", "error", err)
		}
	})

	w := watcher.New(ws.Catalog, ws.Root, rebuild)
	w.Debounce = cmd.Duration(debounceFlag)

	if err := w.Run(ctx); err != nil {
		logger.Error("watch failed", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}

// Rebuild returns a watcher callback that builds the changed topics that are stale and
// hands each report to done.
func Rebuild(
	orch *orchestrator.Orchestrator, checker *staleness.Checker, opts orchestrator.Options, done func(orchestrator.Report),
) watcher.BuildFunc {
	return func(ctx context.Context, topics []catalog.Topic) {
		names := make([]string, 0, len(topics))

		for _, t := range topics {
			// Saving without changes may leave the artifacts fresh.
			if stale, err := checker.IsStale(t); err == nil && !stale {
				ctxlog.Debug(ctx, "changed topic is up to date", "topic", t.Name)
				continue
			}

			names = append(names, t.Name)
		}

		if len(names) == 0 {
			return
		}

		ctxlog.Info(ctx, "rebuilding", "topics", names, "at", time.Now().Format(time.TimeOnly))

		rep, err := orch.Build(ctx, orchestrator.Selection{Mode: orchestrator.ModeExplicit, Names: names}, opts)
		if err != nil {
			ctxlog.Error(ctx, "rebuild failed", "error", err)
			return
		}

		done(rep)
	}
}
