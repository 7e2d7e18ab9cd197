// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package orchestrator

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/decks/internal/render"
	"github.com/spf13/afero"
)

var (
	// ErrConfigFileMissing is returned when the shared render configuration file does not exist.
	ErrConfigFileMissing = errors.New("configuration file not found")
	// ErrConfigFileIsDir is returned when the configuration path is a directory.
	ErrConfigFileIsDir = errors.New("configuration path is a directory")
)

// lookPath is a package variable so tests can stub the PATH search.
var lookPath = render.LookPath

// Preflight checks the environment before any build work starts and returns the
// resolved render tool path. The tool is not looked up for a dry run.
// Every problem found is reported, each wrapped in ErrConfiguration.
func Preflight(fs afero.Fs, opts Options) (string, error) {
	var merr *multierror.Error

	if info, err := fs.Stat(opts.ConfigPath); err != nil {
		merr = multierror.Append(merr, fmt.Errorf("%w: %w: %s", ErrConfiguration, ErrConfigFileMissing, opts.ConfigPath))
	} else if info.IsDir() {
		merr = multierror.Append(merr, fmt.Errorf("%w: %w: %s", ErrConfiguration, ErrConfigFileIsDir, opts.ConfigPath))
	}

	tool := opts.Tool
	if !opts.DryRun {
		path, err := lookPath(opts.Tool)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%w: %w", ErrConfiguration, err))
		}

		tool = path
	}

	return tool, merr.ErrorOrNil()
}
