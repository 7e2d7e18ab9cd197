// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package build implements the build command.
package build

import (
	"context"
	"errors"
	"slices"

	"github.com/matt-FFFFFF/decks/cmd/decks/workspace"
	"github.com/matt-FFFFFF/decks/internal/ctxlog"
	"github.com/matt-FFFFFF/decks/internal/metrics"
	"github.com/matt-FFFFFF/decks/internal/orchestrator"
	"github.com/matt-FFFFFF/decks/internal/render"
	"github.com/matt-FFFFFF/decks/internal/report"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
)

const (
	allFlag         = "all"
	staleFlag       = "stale"
	topicsFlag      = "topics"
	dryRunFlag      = "dry-run"
	parallelismFlag = "parallelism"
	metricsFileFlag = "metrics-file"
	artifactsFlag   = "show-artifacts"
	cliExitStr      = ""
)

// ErrWriteMetrics is returned when the metrics textfile cannot be written.
var ErrWriteMetrics = errors.New("failed to write metrics file")

// NewBuildCmd returns the command that renders the selected topics.
func NewBuildCmd() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "Render the dark and light HTML and PDF artifacts of the selected topics",
		ArgsUsage: "[TOPIC...]",
		Description: `Build renders every artifact of the selected topics with the render tool.

By default only stale topics are built: those with a missing artifact, or an artifact
older than the source document. --all rebuilds everything, and naming topics builds
exactly those. The selection modes are mutually exclusive.

Interrupting the build stops new topics from starting. Renders already running are
allowed to finish, and no temporary source copy is left behind.`,
		Flags: slices.Concat(workspace.Flags(), workspace.RenderFlags(), []cli.Flag{
			&cli.BoolFlag{
				Name:     allFlag,
				Aliases:  []string{"force", "a"},
				Usage:    "Build every topic regardless of staleness",
				OnlyOnce: true,
			},
			&cli.BoolFlag{
				Name:     staleFlag,
				Aliases:  []string{"modified", "m"},
				Usage:    "Build only topics whose artifacts are missing or out of date (default)",
				OnlyOnce: true,
			},
			&cli.StringSliceFlag{
				Name:    topicsFlag,
				Aliases: []string{"t"},
				Usage:   "Build the named topic. Specify multiple times to build several topics.",
			},
			&cli.BoolFlag{
				Name:     dryRunFlag,
				Aliases:  []string{"n"},
				Usage:    "Show what would be built without rendering anything",
				OnlyOnce: true,
			},
			&cli.IntFlag{
				Name:    parallelismFlag,
				Aliases: []string{"p"},
				Usage: "Set the maximum number of topics to build concurrently. " +
					"Defaults to the number of CPU cores available.",
				Value: 0,
			},
			&cli.StringFlag{
				Name:      metricsFileFlag,
				Usage:     "Write Prometheus metrics for the run to this file in the node exporter textfile format",
				TakesFile: true,
				OnlyOnce:  true,
			},
			&cli.BoolFlag{
				Name:     artifactsFlag,
				Usage:    "List the artifacts written by each topic",
				OnlyOnce: true,
			},
		}),
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("Running build command")

	ws, err := workspace.Open(ctx, cmd)
	if err != nil {
		return workspace.ConfigExit(cmd, err)
	}

	sel, err := orchestrator.NewSelection(
		cmd.Bool(allFlag),
		cmd.Bool(staleFlag),
		slices.Concat(cmd.StringSlice(topicsFlag), cmd.Args().Slice()),
	)
	if err != nil {
		return workspace.ConfigExit(cmd, err)
	}

	opts, err := workspace.RenderOptions(cmd)
	if err != nil {
		return workspace.ConfigExit(cmd, err)
	}

	opts.DryRun = cmd.Bool(dryRunFlag)
	opts.Parallelism = cmd.Int(parallelismFlag)

	toolPath, err := orchestrator.Preflight(ws.FS, opts)
	if err != nil {
		return workspace.ConfigExit(cmd, err)
	}

	var (
		rec  metrics.Recorder
		prom *metrics.PrometheusRecorder
	)

	if cmd.String(metricsFileFlag) != "" {
		prom = metrics.NewPrometheusRecorder(prometheus.NewRegistry())
		rec = prom
	}

	orch := ws.Orchestrator(render.NewCommandRenderer(toolPath), rec)

	rep, err := orch.Build(ctx, sel, opts)
	if err != nil {
		return workspace.ConfigExit(cmd, err)
	}

	ropts := report.DefaultOptions()
	ropts.ShowArtifacts = cmd.Bool(artifactsFlag)

	if err := report.Write(cmd.Root().Writer, rep, ropts); err != nil {
		logger.Error("could not write report", "error", err)
	}

	if prom != nil {
		if err := prom.WriteTextfile(cmd.String(metricsFileFlag)); err != nil {
			logger.Error("could not write metrics", "error", errors.Join(ErrWriteMetrics, err))
		}
	}

	if code := rep.ExitCode(); code != 0 {
		return cli.Exit(cliExitStr, code)
	}

	return nil
}
