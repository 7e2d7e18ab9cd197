// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"cmp"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrTopicNotFound is returned by ByName when no topic has the requested name.
	ErrTopicNotFound = errors.New("topic not found")
	// ErrInvalidCatalog is returned when the topics violate a catalog invariant.
	ErrInvalidCatalog = errors.New("invalid topic catalog")
	// ErrDuplicateKey is returned when two topics share a key.
	ErrDuplicateKey = errors.New("duplicate topic key")
	// ErrDuplicateDirectory is returned when two topics share a workspace directory.
	ErrDuplicateDirectory = errors.New("duplicate topic directory")
	// ErrDuplicateName is returned when two topics share a name.
	ErrDuplicateName = errors.New("duplicate topic name")
	// ErrInvalidTopic is returned for a topic with a missing name or a non-positive key.
	ErrInvalidTopic = errors.New("invalid topic")
)

// Topic is one document to build.
type Topic struct {
	Key       int    // Ordinal, unique across the catalog.
	Directory string // Workspace directory, relative to the build root unless absolute.
	Name      string // Document name; the source is <Directory>/<Name>.md.
}

// Dir returns the topic workspace directory resolved against root.
func (t Topic) Dir(root string) string {
	if filepath.IsAbs(t.Directory) {
		return t.Directory
	}

	return filepath.Join(root, t.Directory)
}

// String implements fmt.Stringer.
func (t Topic) String() string {
	return fmt.Sprintf("%s (%d, %s)", t.Name, t.Key, t.Directory)
}

// Catalog is an ordered, immutable set of topics.
type Catalog struct {
	topics []Topic
	byName map[string]int
}

// New validates topics and returns a catalog ordered by key.
// Every violation is reported, not only the first one.
func New(topics ...Topic) (*Catalog, error) {
	sorted := slices.Clone(topics)
	slices.SortStableFunc(sorted, func(a, b Topic) int { return cmp.Compare(a.Key, b.Key) })

	var merr *multierror.Error

	keys := make(map[int]struct{}, len(sorted))
	dirs := make(map[string]string, len(sorted))
	byName := make(map[string]int, len(sorted))

	for i, t := range sorted {
		if t.Name == "" || t.Key <= 0 {
			merr = multierror.Append(merr, fmt.Errorf("%w: key=%d name=%q", ErrInvalidTopic, t.Key, t.Name))
			continue
		}

		if t.Directory == "" {
			merr = multierror.Append(merr, fmt.Errorf("%w: %s has no directory", ErrInvalidTopic, t.Name))
			continue
		}

		sorted[i].Directory = filepath.Clean(t.Directory)

		if _, ok := keys[t.Key]; ok {
			merr = multierror.Append(merr, fmt.Errorf("%w: %d", ErrDuplicateKey, t.Key))
		}

		if other, ok := dirs[sorted[i].Directory]; ok {
			merr = multierror.Append(merr, fmt.Errorf("%w: %s used by %s and %s",
				ErrDuplicateDirectory, sorted[i].Directory, other, t.Name))
		}

		if _, ok := byName[t.Name]; ok {
			merr = multierror.Append(merr, fmt.Errorf("%w: %s", ErrDuplicateName, t.Name))
		}

		keys[t.Key] = struct{}{}
		dirs[sorted[i].Directory] = t.Name
		byName[t.Name] = i
	}

	if err := merr.ErrorOrNil(); err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}

	return &Catalog{topics: sorted, byName: byName}, nil
}

// All returns the topics ordered by key. The slice is a copy.
func (c *Catalog) All() []Topic {
	return slices.Clone(c.topics)
}

// Len returns the number of topics.
func (c *Catalog) Len() int {
	return len(c.topics)
}

// ByName returns the topic with the given name.
func (c *Catalog) ByName(name string) (Topic, error) {
	i, ok := c.byName[name]
	if !ok {
		return Topic{}, fmt.Errorf("%w: %s (known topics: %s)", ErrTopicNotFound, name, strings.Join(c.Names(), ", "))
	}

	return c.topics[i], nil
}

// Names returns the topic names in key order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.topics))
	for i, t := range c.topics {
		names[i] = t.Name
	}

	return names
}

// WeekDirectory is the directory used for a topic whose catalog entry has none.
func WeekDirectory(key int) string {
	return fmt.Sprintf("week%d", key)
}

var defaultNames = []string{
	"introduction",
	"ownership_p1",
	"structs_enums",
	"collections_generics",
	"errors_traits",
	"modules_testing",
	"closures_iterators",
	"ownership_p2",
	"lifetimes",
	"smart_pointers",
	"unsafe",
	"parallelism",
	"concurrency",
}

// Default returns the built-in catalog: one topic per course week, stored in week<N>.
func Default() *Catalog {
	topics := make([]Topic, len(defaultNames))
	for i, name := range defaultNames {
		topics[i] = Topic{Key: i + 1, Directory: WeekDirectory(i + 1), Name: name}
	}

	c, err := New(topics...)
	if err != nil {
		panic(err) // static data
	}

	return c
}
