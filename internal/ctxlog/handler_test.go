// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleHandler_Handle(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.With("topic", "lifetimes").Info("rendered", "output", "lifetimes-dark.pdf")

	out := buf.String()
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "rendered")
	assert.Contains(t, out, `"topic": "lifetimes"`)
	assert.Contains(t, out, `"output": "lifetimes-dark.pdf"`)
	assert.NotContains(t, out, `"msg"`, "builtin keys are printed outside the attribute block")
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.NotContains(t, out, "\033[", "colour is off unless requested")
}

func TestConsoleHandler_NoAttrs(t *testing.T) {
	var buf bytes.Buffer

	slog.New(NewConsoleHandler(&buf, nil)).Info("plain")

	assert.NotContains(t, buf.String(), "{")
}

func TestConsoleHandler_Colour(t *testing.T) {
	var buf bytes.Buffer

	slog.New(NewConsoleHandler(&buf, nil, WithColour())).Error("boom")

	assert.Contains(t, buf.String(), "\033[31mERROR:\033[0m")
}

func TestConsoleHandler_Enabled(t *testing.T) {
	h := NewConsoleHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestConsoleHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer

	slog.New(NewConsoleHandler(&buf, nil)).WithGroup("job").Info("done", "status", "completed")

	assert.Contains(t, buf.String(), `"job"`)
	assert.Contains(t, buf.String(), `"status": "completed"`)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestConsoleHandler_WriteError(t *testing.T) {
	h := NewConsoleHandler(failingWriter{}, nil)
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0)

	err := h.Handle(context.Background(), r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIoWrite)
}
