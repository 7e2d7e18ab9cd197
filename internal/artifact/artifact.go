// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package artifact names the files a topic build reads and writes.
//
// For a topic with name N in directory D the source is D/N.md, the artifacts are
// D/N-<variant>.<format> and the transient light-variant source copy is D/N-light-temp.md.
package artifact

import (
	"path/filepath"

	"github.com/matt-FFFFFF/decks/internal/catalog"
)

// Variant is a visual theme of the rendered output.
type Variant string

// Format is an output file type.
type Format string

const (
	// Dark is the default theme; the source document is authored in it.
	Dark Variant = "dark"
	// Light is derived from the source with the invert class commented out.
	Light Variant = "light"

	// HTML output.
	HTML Format = "html"
	// PDF output.
	PDF Format = "pdf"

	sourceExt     = ".md"
	tempSuffix    = "-temp"
	variantPrefix = "-"
)

// Variants lists the variants in render order.
var Variants = []Variant{Dark, Light}

// Formats lists the formats in render order.
var Formats = []Format{HTML, PDF}

// Artifact identifies one rendered output file.
type Artifact struct {
	Topic   catalog.Topic
	Variant Variant
	Format  Format
}

// FileName returns the artifact file name relative to the topic directory.
func (a Artifact) FileName() string {
	return a.Topic.Name + variantPrefix + string(a.Variant) + "." + string(a.Format)
}

// Path returns the artifact path resolved against root.
func (a Artifact) Path(root string) string {
	return filepath.Join(a.Topic.Dir(root), a.FileName())
}

// String implements fmt.Stringer.
func (a Artifact) String() string {
	return a.FileName()
}

// Expected returns the four artifacts of a topic in render order.
func Expected(t catalog.Topic) []Artifact {
	out := make([]Artifact, 0, len(Variants)*len(Formats))

	for _, v := range Variants {
		out = append(out, ForVariant(t, v)...)
	}

	return out
}

// ForVariant returns the artifacts of one variant in render order.
func ForVariant(t catalog.Topic, v Variant) []Artifact {
	out := make([]Artifact, len(Formats))
	for i, f := range Formats {
		out[i] = Artifact{Topic: t, Variant: v, Format: f}
	}

	return out
}

// SourceName returns the source document file name.
func SourceName(t catalog.Topic) string {
	return t.Name + sourceExt
}

// SourcePath returns the source document path resolved against root.
func SourcePath(root string, t catalog.Topic) string {
	return filepath.Join(t.Dir(root), SourceName(t))
}

// TempSourceName returns the file name of the transformed light-variant source copy.
func TempSourceName(t catalog.Topic) string {
	return t.Name + variantPrefix + string(Light) + tempSuffix + sourceExt
}

// TempSourcePath returns the light-variant source copy path resolved against root.
func TempSourcePath(root string, t catalog.Topic) string {
	return filepath.Join(t.Dir(root), TempSourceName(t))
}
