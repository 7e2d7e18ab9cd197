// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package orchestrator

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrConfiguration is returned for problems detected before any build work starts.
	ErrConfiguration = errors.New("configuration error")
	// ErrConflictingSelection is returned when more than one selection mode is requested.
	ErrConflictingSelection = errors.New("selection modes are mutually exclusive")
	// ErrUnknownTopic is returned for a requested topic name that is not in the catalog.
	ErrUnknownTopic = errors.New("unknown topic")
)

// Mode selects which topics a build considers.
type Mode int

const (
	// ModeStale builds topics whose artifacts are missing or older than the source.
	ModeStale Mode = iota
	// ModeAll builds every topic.
	ModeAll
	// ModeExplicit builds the named topics regardless of staleness.
	ModeExplicit
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeStale:
		return "stale"
	case ModeAll:
		return "all"
	case ModeExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// Selection is the set of topics requested for a build.
type Selection struct {
	Mode  Mode
	Names []string // Only used by ModeExplicit.
}

// NewSelection builds a Selection from command line choices.
// Names imply ModeExplicit. Combining names, all and stale is a configuration error.
func NewSelection(all, stale bool, names []string) (Selection, error) {
	names = compactNames(names)

	requested := 0
	for _, b := range []bool{all, stale, len(names) > 0} {
		if b {
			requested++
		}
	}

	if requested > 1 {
		return Selection{}, fmt.Errorf("%w: %w", ErrConfiguration, ErrConflictingSelection)
	}

	switch {
	case all:
		return Selection{Mode: ModeAll}, nil
	case len(names) > 0:
		return Selection{Mode: ModeExplicit, Names: names}, nil
	default:
		return Selection{Mode: ModeStale}, nil
	}
}

// compactNames drops empty and repeated names, keeping first occurrences in order.
func compactNames(names []string) []string {
	out := make([]string, 0, len(names))

	for _, n := range names {
		if n == "" || slices.Contains(out, n) {
			continue
		}

		out = append(out, n)
	}

	return out
}
