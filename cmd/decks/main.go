// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the decks command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/decks"
	"github.com/matt-FFFFFF/decks/cmd/decks/build"
	"github.com/matt-FFFFFF/decks/cmd/decks/clean"
	"github.com/matt-FFFFFF/decks/cmd/decks/list"
	"github.com/matt-FFFFFF/decks/cmd/decks/watch"
	"github.com/matt-FFFFFF/decks/internal/ctxlog"
	"github.com/matt-FFFFFF/decks/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

func newRootCmd() *cli.Command {
	return &cli.Command{
		Commands: []*cli.Command{
			build.NewBuildCmd(),
			list.NewListCmd(),
			clean.NewCleanCmd(),
			watch.NewWatchCmd(),
		},
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Name:      "decks",
		Description: `Decks renders a course's slide decks, each topic to dark and light HTML and PDF.
Only out of date topics are rendered by default, several topics at a time.`,
		Usage:     "decks build",
		Version:   fmt.Sprintf("%s (commit: %s)", decks.Version, decks.Commit),
		Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
		Authors: []any{
			"Matt White (matt-FFFFFF)",
		},
		EnableShellCompletion: true,
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)
	defer signalbroker.Stop(sigCh)

	go signalbroker.Watch(ctx, sigCh, cancel)

	err := newRootCmd().Run(ctx, os.Args) // Exit codes from cli.Exit are handled by the cli framework

	// Check if the context was cancelled (e.g., due to signals)
	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1)
	}

	if err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}
}
