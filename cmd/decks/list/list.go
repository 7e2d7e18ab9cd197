// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package list implements the list command.
package list

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/decks/cmd/decks/workspace"
	"github.com/matt-FFFFFF/decks/internal/catalog"
	"github.com/matt-FFFFFF/decks/internal/color"
	"github.com/matt-FFFFFF/decks/internal/ctxlog"
	"github.com/matt-FFFFFF/decks/internal/staleness"
	"github.com/muesli/termenv"
	"github.com/urfave/cli/v3"
)

// ErrWriteList is returned when the topic list cannot be written.
var ErrWriteList = errors.New("failed to write topic list")

// NewListCmd returns the command that prints the catalog with the state of each topic.
func NewListCmd() *cli.Command {
	return &cli.Command{
		Name:        "list",
		Aliases:     []string{"ls"},
		Usage:       "List the topics and whether they need building",
		Description: "List prints every topic of the catalog with its directory and build state.",
		Flags:       workspace.Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctxlog.Debug(ctx, "Running list command")

			ws, err := workspace.Open(ctx, cmd)
			if err != nil {
				return workspace.ConfigExit(cmd, err)
			}

			if err := write(cmd.Root().Writer, ws.Catalog.All(), ws.Checker(), color.Enabled()); err != nil {
				return errors.Join(ErrWriteList, err)
			}

			return nil
		},
	}
}

var (
	colourFresh   = lipgloss.Color("35")
	colourStale   = lipgloss.Color("220")
	colourProblem = lipgloss.Color("167")
)

// columnGap is the number of spaces between columns.
const columnGap = 2

// State is the build state of a topic as shown by list.
func State(c *staleness.Checker, t catalog.Topic) (string, lipgloss.Color) {
	stale, err := c.IsStale(t)

	switch {
	case errors.Is(err, staleness.ErrSourceMissing):
		return "source missing", colourProblem
	case err != nil:
		return "error: " + err.Error(), colourProblem
	case stale:
		return "stale", colourStale
	default:
		return "up to date", colourFresh
	}
}

func write(out io.Writer, topics []catalog.Topic, c *staleness.Checker, colour bool) error {
	r := lipgloss.NewRenderer(out)
	if colour {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	rows := [][]string{{"KEY", "NAME", "DIRECTORY", "STATE"}}
	states := make([]lipgloss.Style, 0, len(topics))

	for _, t := range topics {
		state, fg := State(c, t)
		rows = append(rows, []string{strconv.Itoa(t.Key), t.Name, t.Directory, state})
		states = append(states, r.NewStyle().Foreground(fg))
	}

	last := len(rows[0]) - 1
	columns := make([]lipgloss.Style, last)

	for col := range columns {
		w := 0
		for _, row := range rows {
			w = max(w, lipgloss.Width(row[col]))
		}

		columns[col] = r.NewStyle().Width(w + columnGap)
	}

	header := r.NewStyle().Bold(true)

	for i, row := range rows {
		var sb strings.Builder

		for col, cell := range row[:last] {
			sb.WriteString(columns[col].Render(cell))
		}

		if i == 0 {
			sb.WriteString(header.Render(row[last]))
		} else {
			sb.WriteString(states[i-1].Render(row[last]))
		}

		if _, err := fmt.Fprintln(out, sb.String()); err != nil {
			return err
		}
	}

	return nil
}
