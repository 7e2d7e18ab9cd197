// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/matt-FFFFFF/decks/internal/ctxlog"
	"github.com/matt-FFFFFF/decks/internal/teereader"
)

const (
	maxBufferSize    = 8 * 1024 * 1024 // 8MB
	progressInterval = 10 * time.Second

	lastLineMaxLength = 120
)

var _ Renderer = (*CommandRenderer)(nil)

var (
	// ErrCouldNotStartProcess is returned when the render tool could not be started.
	ErrCouldNotStartProcess = errors.New("could not start render process")
	// ErrFailedToCreatePipe is returned when an output pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrFailedToReadBuffer is returned when the tool output could not be read.
	ErrFailedToReadBuffer = errors.New("failed to read buffer")
)

// CommandRenderer runs an executable as
//
//	<Path> <source> -c <config> -o <output> [ExtraArgs...]
//
// which is the command line accepted by marp-cli.
type CommandRenderer struct {
	Path      string            // Resolved executable path, see LookPath.
	ExtraArgs []string          // Appended after the standard arguments.
	Env       map[string]string // Added to the inherited environment.
}

// NewCommandRenderer returns a CommandRenderer for the executable at path.
func NewCommandRenderer(path string, extraArgs ...string) *CommandRenderer {
	return &CommandRenderer{Path: path, ExtraArgs: extraArgs}
}

// Args returns the argument vector for inv, without the executable name.
func (c *CommandRenderer) Args(inv Invocation) []string {
	return slices.Concat([]string{inv.Source, "-c", inv.Config, "-o", inv.Output}, c.ExtraArgs)
}

// Render implements Renderer. ctx is used for logging only; the process is allowed to
// run to completion even when ctx is cancelled.
func (c *CommandRenderer) Render(ctx context.Context, inv Invocation) error {
	logger := ctxlog.Logger(ctx).With("output", inv.Output)
	args := c.Args(inv)

	env := os.Environ()
	for k, v := range c.Env {
		env = append(env, k+"="+v)
	}

	rOut, wOut, err := os.Pipe()
	if err != nil {
		return errors.Join(ErrFailedToCreatePipe, err)
	}

	rErr, wErr, err := os.Pipe()
	if err != nil {
		_ = rOut.Close()
		_ = wOut.Close()

		return errors.Join(ErrFailedToCreatePipe, err)
	}

	stdin, err := os.Open(os.DevNull)
	if err != nil {
		_ = rOut.Close()
		_ = wOut.Close()
		_ = rErr.Close()
		_ = wErr.Close()

		return errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("starting renderer", "path", c.Path, "dir", inv.Dir, "args", args)

	ps, err := os.StartProcess(c.Path, slices.Concat([]string{filepath.Base(c.Path)}, args), &os.ProcAttr{
		Dir:   inv.Dir,
		Env:   env,
		Files: []*os.File{stdin, wOut, wErr},
		Sys:   sysProcAttr(),
	})

	// The child holds its own copies.
	_ = stdin.Close()
	_ = wOut.Close()
	_ = wErr.Close()

	if err != nil {
		_ = rOut.Close()
		_ = rErr.Close()

		return errors.Join(ErrCouldNotStartProcess, err)
	}

	start := time.Now()
	logger.Debug("renderer started", "pid", ps.Pid)

	var (
		wg             sync.WaitGroup
		stdout, stderr []byte
		outErr, errErr error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		stdout, outErr = readBounded(rOut, maxBufferSize)
	}()

	// marp reports progress on stderr.
	errTee := teereader.New(rErr)

	go func() {
		defer wg.Done()
		stderr, errErr = readBounded(errTee, maxBufferSize)
	}()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				logger.Info("still rendering",
					"elapsed", time.Since(start).Round(time.Second),
					"lastLine", errTee.LastLine(lastLineMaxLength))
			case <-done:
				return
			}
		}
	}()

	state, waitErr := ps.Wait()

	close(done)
	wg.Wait()

	_ = rOut.Close()
	_ = rErr.Close()

	logger.Debug("renderer finished",
		"elapsed", time.Since(start).Round(time.Millisecond),
		"stdoutBytes", len(stdout),
		"stderrBytes", len(stderr),
	)

	if waitErr != nil {
		return fmt.Errorf("wait for %s: %w", filepath.Base(c.Path), waitErr)
	}

	if code := state.ExitCode(); code != 0 {
		return &ExitError{Tool: filepath.Base(c.Path), ExitCode: code, Stderr: stderr}
	}

	if outErr != nil || errErr != nil {
		logger.Warn("could not read renderer output", "error", errors.Join(outErr, errErr))
	}

	return nil
}

// readBounded keeps at most limit bytes and drains the remainder so the child never
// blocks on a full pipe.
func readBounded(r io.Reader, limit int64) ([]byte, error) {
	var buf bytes.Buffer

	if _, err := io.CopyN(&buf, r, limit); err != nil && !errors.Is(err, io.EOF) {
		return buf.Bytes(), errors.Join(ErrFailedToReadBuffer, err)
	}

	if _, err := io.Copy(io.Discard, r); err != nil {
		return buf.Bytes(), errors.Join(ErrFailedToReadBuffer, err)
	}

	return buf.Bytes(), nil
}
