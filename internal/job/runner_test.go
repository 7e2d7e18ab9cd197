// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package job

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/matt-FFFFFF/decks/internal/artifact"
	"github.com/matt-FFFFFF/decks/internal/catalog"
	"github.com/matt-FFFFFF/decks/internal/ctxlog"
	"github.com/matt-FFFFFF/decks/internal/render"
	"github.com/matt-FFFFFF/decks/internal/variant"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	root   = "/course"
	config = "/course/marp_config.json"
)

var topic = catalog.Topic{Key: 5, Directory: "week5", Name: "structs"}

type variantFunc func(ctx context.Context, t catalog.Topic, v artifact.Variant, configPath string) ([]artifact.Artifact, error)

func (f variantFunc) RenderVariant(
	ctx context.Context, t catalog.Topic, v artifact.Variant, configPath string,
) ([]artifact.Artifact, error) {
	return f(ctx, t, v, configPath)
}

func workspace(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(topic.Dir(root), 0o755))
	require.NoError(t, afero.WriteFile(fs, artifact.SourcePath(root, topic), []byte("class: invert\n# Structs\n"), 0o644))

	return fs
}

// toolWriting returns a render tool that writes its output into fs, failing for outputs in fail.
func toolWriting(fs afero.Fs, fail ...string) render.RendererFunc {
	return func(_ context.Context, inv render.Invocation) error {
		for _, f := range fail {
			if inv.Output == f {
				return &render.ExitError{Tool: "marp", ExitCode: 1, Stderr: []byte("[ERROR] chrome crashed\n")}
			}
		}

		return afero.WriteFile(fs, filepath.Join(inv.Dir, inv.Output), []byte(inv.Source), 0o644)
	}
}

func testCtx() context.Context {
	return ctxlog.Discard(context.Background())
}

func TestRun_Completed(t *testing.T) {
	fs := workspace(t)
	r := New(fs, root, variant.New(fs, root, toolWriting(fs), nil), nil)

	out := r.Run(testCtx(), Task{Topic: topic, ConfigPath: config})
	require.NoError(t, out.Err)
	assert.Equal(t, StatusCompleted, out.Status)
	assert.Equal(t, artifact.Expected(topic), out.Artifacts)
	assert.False(t, out.Failed())

	for _, a := range artifact.Expected(topic) {
		exists, err := afero.Exists(fs, a.Path(root))
		require.NoError(t, err)
		assert.True(t, exists, a.FileName())
	}

	exists, _ := afero.Exists(fs, artifact.TempSourcePath(root, topic))
	assert.False(t, exists)
}

func TestRun_DryRun(t *testing.T) {
	fs := workspace(t)
	called := false
	r := New(fs, root, variantFunc(func(context.Context, catalog.Topic, artifact.Variant, string) ([]artifact.Artifact, error) {
		called = true
		return nil, nil
	}), nil)

	// A dry run does not look at cancellation.
	ctx, cancel := context.WithCancel(testCtx())
	cancel()

	out := r.Run(ctx, Task{Topic: topic, ConfigPath: config, DryRun: true})
	assert.Equal(t, StatusSkipped, out.Status)
	assert.NoError(t, out.Err)
	assert.Empty(t, out.Artifacts)
	assert.False(t, called)
}

func TestRun_WorkspaceErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(fs afero.Fs)
	}{
		{
			name:  "missing directory",
			setup: func(afero.Fs) {},
		},
		{
			name: "directory is a file",
			setup: func(fs afero.Fs) {
				_ = afero.WriteFile(fs, topic.Dir(root), nil, 0o644)
			},
		},
		{
			name: "missing source",
			setup: func(fs afero.Fs) {
				_ = fs.MkdirAll(topic.Dir(root), 0o755)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			tt.setup(fs)

			r := New(fs, root, variant.New(fs, root, toolWriting(fs), nil), nil)

			// Workspace errors are reported for dry runs too.
			for _, dry := range []bool{false, true} {
				out := r.Run(testCtx(), Task{Topic: topic, ConfigPath: config, DryRun: dry})
				assert.Equal(t, StatusFailed, out.Status)
				assert.ErrorIs(t, out.Err, ErrWorkspace)
				assert.Empty(t, out.Artifacts)
			}
		})
	}
}

func TestRun_LightPdfFailureKeepsEarlierArtifacts(t *testing.T) {
	fs := workspace(t)
	r := New(fs, root, variant.New(fs, root, toolWriting(fs, "structs-light.pdf"), nil), nil)

	out := r.Run(testCtx(), Task{Topic: topic, ConfigPath: config})
	assert.Equal(t, StatusFailed, out.Status)
	assert.True(t, out.Failed())

	var rf *variant.RenderFailure
	require.ErrorAs(t, out.Err, &rf)
	assert.Equal(t, "structs-light.pdf", rf.Artifact.FileName())

	want := artifact.Expected(topic)[:3]
	assert.Equal(t, want, out.Artifacts)

	for _, a := range want {
		exists, _ := afero.Exists(fs, a.Path(root))
		assert.True(t, exists, a.FileName())
	}

	exists, _ := afero.Exists(fs, artifact.Expected(topic)[3].Path(root))
	assert.False(t, exists)

	exists, _ = afero.Exists(fs, artifact.TempSourcePath(root, topic))
	assert.False(t, exists)
}

func TestRun_DarkFailureStopsBeforeLight(t *testing.T) {
	fs := workspace(t)

	var variants []artifact.Variant
	r := New(fs, root, variantFunc(func(_ context.Context, _ catalog.Topic, v artifact.Variant, _ string) ([]artifact.Artifact, error) {
		variants = append(variants, v)
		return nil, &variant.RenderFailure{Topic: topic.Name, Err: errors.New("boom")}
	}), nil)

	out := r.Run(testCtx(), Task{Topic: topic, ConfigPath: config})
	assert.Equal(t, StatusFailed, out.Status)
	assert.Equal(t, []artifact.Variant{artifact.Dark}, variants)
}

func TestRun_Cancelled(t *testing.T) {
	fs := workspace(t)
	ctx, cancel := context.WithCancel(testCtx())
	defer cancel()

	tool := toolWriting(fs)
	r := New(fs, root, variant.New(fs, root, render.RendererFunc(func(c context.Context, inv render.Invocation) error {
		// Cancellation arrives while dark-pdf is in flight; that render still completes.
		if inv.Output == "structs-dark.pdf" {
			cancel()
		}

		return tool(c, inv)
	}), nil), nil)

	out := r.Run(ctx, Task{Topic: topic, ConfigPath: config})
	assert.Equal(t, StatusCancelled, out.Status)
	assert.ErrorIs(t, out.Err, variant.ErrCancelled)
	assert.False(t, out.Failed())
	assert.Equal(t, artifact.Expected(topic)[:2], out.Artifacts)

	exists, _ := afero.Exists(fs, artifact.TempSourcePath(root, topic))
	assert.False(t, exists)
}

func TestRun_PanicIsRecovered(t *testing.T) {
	fs := workspace(t)
	r := New(fs, root, variantFunc(func(context.Context, catalog.Topic, artifact.Variant, string) ([]artifact.Artifact, error) {
		panic("renderer exploded")
	}), nil)

	out := r.Run(testCtx(), Task{Topic: topic, ConfigPath: config})
	assert.Equal(t, StatusFailed, out.Status)

	var pe *ErrJobPanic
	require.ErrorAs(t, out.Err, &pe)
	assert.Equal(t, "job panic: renderer exploded", pe.Error())
}

func TestErrJobPanic_Unwrap(t *testing.T) {
	inner := errors.New("nil map")
	assert.ErrorIs(t, &ErrJobPanic{v: inner}, inner)
	assert.NoError(t, (&ErrJobPanic{v: 42}).Unwrap())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "skipped", StatusSkipped.String())
	assert.Equal(t, "completed", StatusCompleted.String())
	assert.Equal(t, "cancelled", StatusCancelled.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", Status(99).String())
}
