// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"context"
	"fmt"
	"strings"
)

// Invocation describes one render: Source and Output are relative to Dir,
// Config is passed through unmodified.
type Invocation struct {
	Dir    string
	Source string
	Config string
	Output string
}

// Renderer is the external render collaborator.
type Renderer interface {
	// Render blocks until the output has been written or the render failed.
	Render(ctx context.Context, inv Invocation) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, inv Invocation) error

// Render implements Renderer.
func (f RendererFunc) Render(ctx context.Context, inv Invocation) error {
	return f(ctx, inv)
}

// ExitError is returned when the render tool exits with a non-zero status.
type ExitError struct {
	Tool     string
	ExitCode int
	Stderr   []byte
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Tool, e.ExitCode)

	if last := lastLine(e.Stderr); last != "" {
		msg += ": " + last
	}

	return msg
}

func lastLine(b []byte) string {
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")

	return strings.TrimSpace(lines[len(lines)-1])
}
