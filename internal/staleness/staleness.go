// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package staleness decides whether a topic needs rebuilding by comparing file
// modification times. There is no cache file: the artifacts on disk are the state.
package staleness

import (
	"errors"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/decks/internal/artifact"
	"github.com/matt-FFFFFF/decks/internal/catalog"
	"github.com/spf13/afero"
)

// ErrSourceMissing is returned when the topic source document does not exist.
var ErrSourceMissing = errors.New("source document missing")

// Checker compares a topic source against its artifacts.
type Checker struct {
	FS   afero.Fs
	Root string
}

// New returns a Checker for topics under root.
func New(fs afero.Fs, root string) *Checker {
	return &Checker{FS: fs, Root: root}
}

// IsStale reports whether any expected artifact of t is missing or older than its source.
// A missing source is reported as ErrSourceMissing rather than as "not stale".
func (c *Checker) IsStale(t catalog.Topic) (bool, error) {
	src, err := c.FS.Stat(artifact.SourcePath(c.Root, t))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("%w: %s", ErrSourceMissing, artifact.SourcePath(c.Root, t))
		}

		return false, fmt.Errorf("stat source of %s: %w", t.Name, err)
	}

	missing, err := c.Missing(t)
	if err != nil {
		return false, err
	}

	if len(missing) > 0 {
		return true, nil
	}

	for _, a := range artifact.Expected(t) {
		info, err := c.FS.Stat(a.Path(c.Root))
		if err != nil {
			return false, fmt.Errorf("stat %s: %w", a, err)
		}

		if src.ModTime().After(info.ModTime()) {
			return true, nil
		}
	}

	return false, nil
}

// Missing returns the expected artifacts of t that do not exist.
func (c *Checker) Missing(t catalog.Topic) ([]artifact.Artifact, error) {
	var missing []artifact.Artifact

	for _, a := range artifact.Expected(t) {
		if _, err := c.FS.Stat(a.Path(c.Root)); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				missing = append(missing, a)
				continue
			}

			return nil, fmt.Errorf("stat %s: %w", a, err)
		}
	}

	return missing, nil
}
