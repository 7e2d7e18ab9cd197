// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package watch rebuilds topics when their source documents change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/matt-FFFFFF/decks/internal/artifact"
	"github.com/matt-FFFFFF/decks/internal/catalog"
	"github.com/matt-FFFFFF/decks/internal/ctxlog"
)

// DefaultDebounce is how long the watcher waits for further changes before building.
const DefaultDebounce = 500 * time.Millisecond

var (
	// ErrWatcher is returned when the file system watcher cannot be created or fails.
	ErrWatcher = errors.New("file watcher error")
	// ErrWatchDirectory is returned when a topic directory cannot be watched.
	ErrWatchDirectory = errors.New("cannot watch topic directory")
)

// BuildFunc builds the given topics. They are passed in catalog order.
type BuildFunc func(ctx context.Context, topics []catalog.Topic)

// Watcher maps source document changes to topic builds.
type Watcher struct {
	Catalog  *catalog.Catalog
	Root     string
	Debounce time.Duration
	Build    BuildFunc

	sources map[string]catalog.Topic // source path -> topic
}

// New returns a Watcher over every topic of cat.
func New(cat *catalog.Catalog, root string, build BuildFunc) *Watcher {
	return &Watcher{
		Catalog:  cat,
		Root:     root,
		Debounce: DefaultDebounce,
		Build:    build,
	}
}

// Run watches the topic directories until ctx is cancelled.
// Topic directories that do not exist are logged and skipped.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Join(ErrWatcher, err)
	}

	defer fw.Close() //nolint:errcheck

	watched := 0

	for _, t := range w.Catalog.All() {
		dir := t.Dir(w.Root)
		if err := fw.Add(dir); err != nil {
			ctxlog.Warn(ctx, "not watching topic", "topic", t.Name, "error", fmt.Errorf("%w: %s: %w", ErrWatchDirectory, dir, err))
			continue
		}

		watched++
	}

	if watched == 0 {
		return fmt.Errorf("%w: no topic directory could be watched", ErrWatcher)
	}

	ctxlog.Info(ctx, "watching for changes", "topics", watched)

	return w.loop(ctx, fw.Events, fw.Errors)
}

// Topic returns the topic whose source document is path.
func (w *Watcher) Topic(path string) (catalog.Topic, bool) {
	if w.sources == nil {
		w.sources = make(map[string]catalog.Topic, w.Catalog.Len())
		for _, t := range w.Catalog.All() {
			w.sources[filepath.Clean(artifact.SourcePath(w.Root, t))] = t
		}
	}

	t, ok := w.sources[filepath.Clean(path)]

	return t, ok
}

func (w *Watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	pending := make(map[int]catalog.Topic)

	timer := time.NewTimer(w.Debounce)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}

			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}

			t, ok := w.Topic(ev.Name)
			if !ok {
				continue
			}

			ctxlog.Debug(ctx, "source changed", "topic", t.Name, "op", ev.Op.String())

			pending[t.Key] = t

			timer.Reset(w.Debounce)

		case err, ok := <-errs:
			if !ok {
				return nil
			}

			return errors.Join(ErrWatcher, err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}

			topics := make([]catalog.Topic, 0, len(pending))
			for _, t := range w.Catalog.All() {
				if _, ok := pending[t.Key]; ok {
					topics = append(topics, t)
				}
			}

			clear(pending)

			w.Build(ctx, topics)
		}
	}
}
