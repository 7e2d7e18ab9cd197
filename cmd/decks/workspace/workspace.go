// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package workspace holds the flags and wiring shared by the decks subcommands.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/matt-FFFFFF/decks/internal/catalog"
	"github.com/matt-FFFFFF/decks/internal/job"
	"github.com/matt-FFFFFF/decks/internal/metrics"
	"github.com/matt-FFFFFF/decks/internal/orchestrator"
	"github.com/matt-FFFFFF/decks/internal/render"
	"github.com/matt-FFFFFF/decks/internal/staleness"
	"github.com/matt-FFFFFF/decks/internal/variant"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

// Flag names shared by several commands.
const (
	RootFlag     = "root"
	CatalogFlag  = "catalog"
	ConfigFlag   = "config"
	RendererFlag = "renderer"

	// ConfigExitCode is the exit code for problems found before any work starts.
	ConfigExitCode = 2
)

var (
	// ErrResolveRoot is returned when the build root cannot be made absolute.
	ErrResolveRoot = errors.New("failed to resolve build root")
	// ErrLoadCatalog is returned when the --catalog file cannot be loaded.
	ErrLoadCatalog = errors.New("failed to load topic catalog")
)

// FsFactory returns the filesystem the commands work on.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Flags returns the flags every command that reads the workspace accepts.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      RootFlag,
			Usage:     "Directory the topic directories are relative to",
			Value:     ".",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name: CatalogFlag,
			Usage: "Topic catalog file (.yaml, .yml or .hcl). " +
				"Supports Hashicorp's go-getter syntax for fetching files from various sources. " +
				"Defaults to the built-in catalog.",
			TakesFile: true,
			OnlyOnce:  true,
		},
	}
}

// RenderFlags returns the flags of commands that render.
func RenderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      ConfigFlag,
			Aliases:   []string{"c"},
			Usage:     "Render configuration file passed to every render, relative to the working directory",
			Value:     "marp_config.json",
			Sources:   cli.EnvVars("DECKS_CONFIG"),
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:     RendererFlag,
			Usage:    "Render tool, as a name on PATH or a path",
			Value:    "marp",
			Sources:  cli.EnvVars("DECKS_RENDERER"),
			OnlyOnce: true,
		},
	}
}

// Workspace is the resolved build root, filesystem and catalog of a command invocation.
type Workspace struct {
	FS      afero.Fs
	Root    string
	Catalog *catalog.Catalog
}

// Open resolves the workspace flags of cmd.
func Open(ctx context.Context, cmd *cli.Command) (*Workspace, error) {
	root, err := filepath.Abs(cmd.String(RootFlag))
	if err != nil {
		return nil, errors.Join(ErrResolveRoot, err)
	}

	cat := catalog.Default()

	if src := cmd.String(CatalogFlag); src != "" {
		cat, err = catalog.Load(ctx, src)
		if err != nil {
			return nil, errors.Join(ErrLoadCatalog, err)
		}
	}

	return &Workspace{FS: FsFactory(), Root: root, Catalog: cat}, nil
}

// Topics resolves names against the catalog, or returns every topic when names is empty.
func (w *Workspace) Topics(names []string) ([]catalog.Topic, error) {
	if len(names) == 0 {
		return w.Catalog.All(), nil
	}

	out := make([]catalog.Topic, 0, len(names))

	var errs []error

	for _, n := range names {
		t, err := w.Catalog.ByName(n)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		out = append(out, t)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", orchestrator.ErrConfiguration, errors.Join(errs...))
	}

	return out, nil
}

// Checker returns a staleness checker for the workspace.
func (w *Workspace) Checker() *staleness.Checker {
	return staleness.New(w.FS, w.Root)
}

// Orchestrator wires the build pipeline for the workspace around tool.
func (w *Workspace) Orchestrator(tool render.Renderer, rec metrics.Recorder) *orchestrator.Orchestrator {
	vr := variant.New(w.FS, w.Root, tool, rec)
	runner := job.New(w.FS, w.Root, vr, rec)

	return orchestrator.New(w.Catalog, w.Checker(), runner, rec)
}

// RenderOptions resolves the render flags of cmd. The configuration path is made absolute
// because every render runs in its topic directory.
func RenderOptions(cmd *cli.Command) (orchestrator.Options, error) {
	cfg, err := filepath.Abs(cmd.String(ConfigFlag))
	if err != nil {
		return orchestrator.Options{}, fmt.Errorf("%w: %w", orchestrator.ErrConfiguration, err)
	}

	return orchestrator.Options{
		ConfigPath: cfg,
		Tool:       cmd.String(RendererFlag),
	}, nil
}

// ConfigExit reports a configuration problem on the command's error writer and returns
// the matching cli exit error.
func ConfigExit(cmd *cli.Command, err error) error {
	fmt.Fprintf(cmd.Root().ErrWriter, "%s\n", err) //nolint:errcheck

	return cli.Exit("", ConfigExitCode)
}
