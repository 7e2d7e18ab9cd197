// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package variant

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/matt-FFFFFF/decks/internal/artifact"
	"github.com/matt-FFFFFF/decks/internal/catalog"
	"github.com/matt-FFFFFF/decks/internal/ctxlog"
	"github.com/matt-FFFFFF/decks/internal/metrics"
	"github.com/matt-FFFFFF/decks/internal/render"
	"github.com/spf13/afero"
)

var (
	// ErrCancelled is returned when cancellation was observed before an external render.
	ErrCancelled = errors.New("render cancelled")
	// ErrTempCopy is returned when the light-variant source copy cannot be written or removed.
	ErrTempCopy = errors.New("light source copy error")
	// ErrUnknownVariant is returned for a variant other than Dark or Light.
	ErrUnknownVariant = errors.New("unknown variant")
)

// RenderFailure identifies the artifact whose external render failed.
type RenderFailure struct {
	Topic    string
	Artifact artifact.Artifact
	Err      error
}

// Error implements the error interface.
func (e *RenderFailure) Error() string {
	return fmt.Sprintf("rendering %s of %s: %v", e.Artifact.FileName(), e.Topic, e.Err)
}

// Unwrap returns the underlying render error.
func (e *RenderFailure) Unwrap() error {
	return e.Err
}

// Renderer renders the variants of topics under Root.
type Renderer struct {
	FS       afero.Fs
	Root     string
	Tool     render.Renderer
	Recorder metrics.Recorder
}

// New returns a Renderer. A nil recorder disables metrics.
func New(fs afero.Fs, root string, tool render.Renderer, rec metrics.Recorder) *Renderer {
	return &Renderer{FS: fs, Root: root, Tool: tool, Recorder: metrics.OrNoop(rec)}
}

// RenderVariant renders every format of variant v for topic t and returns the artifacts
// written. It stops at the first cancelled or failed render; artifacts written before
// that are kept and returned.
func (r *Renderer) RenderVariant(
	ctx context.Context, t catalog.Topic, v artifact.Variant, configPath string,
) (_ []artifact.Artifact, err error) {
	if v == artifact.Dark {
		return r.renderAll(ctx, t, v, artifact.SourceName(t), configPath)
	}

	if v != artifact.Light {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
	}

	if ctx.Err() != nil {
		return nil, ErrCancelled
	}

	if err := r.writeLightSource(ctx, t); err != nil {
		return nil, err
	}

	defer func() {
		if rmErr := r.removeLightSource(t); rmErr != nil {
			ctxlog.Error(ctx, "could not remove light source copy", "topic", t.Name, "error", rmErr)
			err = errors.Join(err, rmErr)
		}
	}()

	return r.renderAll(ctx, t, v, artifact.TempSourceName(t), configPath)
}

func (r *Renderer) renderAll(
	ctx context.Context, t catalog.Topic, v artifact.Variant, source, configPath string,
) ([]artifact.Artifact, error) {
	done := make([]artifact.Artifact, 0, len(artifact.Formats))

	for _, a := range artifact.ForVariant(t, v) {
		if ctx.Err() != nil {
			r.Recorder.ObserveRender(string(a.Variant), string(a.Format), metrics.RenderCancelled, 0)
			return done, ErrCancelled
		}

		logger := ctxlog.Logger(ctx).With("topic", t.Name, "artifact", a.FileName())
		logger.Info("rendering")

		start := time.Now()
		err := r.Tool.Render(ctx, render.Invocation{
			Dir:    t.Dir(r.Root),
			Source: source,
			Config: configPath,
			Output: a.FileName(),
		})
		elapsed := time.Since(start)

		if err != nil {
			r.Recorder.ObserveRender(string(a.Variant), string(a.Format), metrics.RenderFailed, elapsed)
			logger.Error("render failed", "error", err)

			return done, &RenderFailure{Topic: t.Name, Artifact: a, Err: err}
		}

		r.Recorder.ObserveRender(string(a.Variant), string(a.Format), metrics.RenderSuccess, elapsed)
		logger.Info("rendered", "elapsed", elapsed.Round(time.Millisecond))

		done = append(done, a)
	}

	return done, nil
}

func (r *Renderer) writeLightSource(ctx context.Context, t catalog.Topic) error {
	srcPath := artifact.SourcePath(r.Root, t)

	src, err := afero.ReadFile(r.FS, srcPath)
	if err != nil {
		return errors.Join(ErrTempCopy, err)
	}

	if !hasInvert(src) {
		ctxlog.Warn(ctx, "deck has no class: invert directive, light variant will match dark", "topic", t.Name)
	}

	mode := os.FileMode(0o644)
	if info, err := r.FS.Stat(srcPath); err == nil {
		mode = info.Mode().Perm()
	}

	if err := afero.WriteFile(r.FS, artifact.TempSourcePath(r.Root, t), LightTheme(src), mode); err != nil {
		// A partial write may have created the file.
		_ = r.removeLightSource(t)

		return errors.Join(ErrTempCopy, err)
	}

	return nil
}

func (r *Renderer) removeLightSource(t catalog.Topic) error {
	err := r.FS.Remove(artifact.TempSourcePath(r.Root, t))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Join(ErrTempCopy, err)
	}

	return nil
}
