// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package clean implements the clean command.
package clean

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/decks/cmd/decks/workspace"
	"github.com/matt-FFFFFF/decks/internal/artifact"
	"github.com/matt-FFFFFF/decks/internal/catalog"
	"github.com/matt-FFFFFF/decks/internal/ctxlog"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	tempOnlyFlag = "temp-only"
	dryRunFlag   = "dry-run"
	cliExitStr   = ""
)

// ErrClean is returned when a file could not be removed.
var ErrClean = errors.New("failed to remove file")

// NewCleanCmd returns the command that removes artifacts and leftover light source copies.
func NewCleanCmd() *cli.Command {
	return &cli.Command{
		Name:      "clean",
		Usage:     "Remove rendered artifacts and leftover temporary source copies",
		ArgsUsage: "[TOPIC...]",
		Description: `Clean removes the artifacts of the named topics, or of every topic when none
are named, together with any temporary light source copy left by a killed process.
Source documents are never removed.`,
		Flags: append(workspace.Flags(),
			&cli.BoolFlag{
				Name:     tempOnlyFlag,
				Usage:    "Only remove temporary light source copies",
				OnlyOnce: true,
			},
			&cli.BoolFlag{
				Name:     dryRunFlag,
				Aliases:  []string{"n"},
				Usage:    "Print the files that would be removed",
				OnlyOnce: true,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctxlog.Debug(ctx, "Running clean command")

			ws, err := workspace.Open(ctx, cmd)
			if err != nil {
				return workspace.ConfigExit(cmd, err)
			}

			topics, err := ws.Topics(cmd.Args().Slice())
			if err != nil {
				return workspace.ConfigExit(cmd, err)
			}

			removed, err := Remove(ws.FS, ws.Root, topics, cmd.Bool(tempOnlyFlag), cmd.Bool(dryRunFlag))

			verb := "removed"
			if cmd.Bool(dryRunFlag) {
				verb = "would remove"
			}

			for _, p := range removed {
				fmt.Fprintf(cmd.Root().Writer, "%s %s\n", verb, p) //nolint:errcheck
			}

			if err != nil {
				ctxlog.Error(ctx, "clean failed", "error", err)
				return cli.Exit(cliExitStr, 1)
			}

			return nil
		},
	}
}

// Targets returns the files clean considers for t: the light source copy first, then
// the artifacts unless tempOnly is set.
func Targets(root string, t catalog.Topic, tempOnly bool) []string {
	out := []string{artifact.TempSourcePath(root, t)}
	if tempOnly {
		return out
	}

	for _, a := range artifact.Expected(t) {
		out = append(out, a.Path(root))
	}

	return out
}

// Remove deletes the existing targets of topics and returns the paths removed. With
// dryRun set nothing is deleted and the paths that would be removed are returned.
func Remove(fs afero.Fs, root string, topics []catalog.Topic, tempOnly, dryRun bool) ([]string, error) {
	var (
		removed []string
		merr    *multierror.Error
	)

	for _, t := range topics {
		for _, p := range Targets(root, t, tempOnly) {
			if _, err := fs.Stat(p); errors.Is(err, os.ErrNotExist) {
				continue
			}

			if !dryRun {
				if err := fs.Remove(p); err != nil {
					merr = multierror.Append(merr, fmt.Errorf("%w: %s: %w", ErrClean, p, err))
					continue
				}
			}

			removed = append(removed, p)
		}
	}

	return removed, merr.ErrorOrNil()
}
