// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package artifact

import (
	"testing"

	"github.com/matt-FFFFFF/decks/internal/catalog"
	"github.com/stretchr/testify/assert"
)

var lifetimes = catalog.Topic{Key: 9, Directory: "week9", Name: "lifetimes"}

func TestExpected(t *testing.T) {
	got := Expected(lifetimes)

	names := make([]string, len(got))
	for i, a := range got {
		names[i] = a.FileName()
	}

	assert.Equal(t, []string{
		"lifetimes-dark.html",
		"lifetimes-dark.pdf",
		"lifetimes-light.html",
		"lifetimes-light.pdf",
	}, names)
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/c/week9/lifetimes-light.pdf", Artifact{Topic: lifetimes, Variant: Light, Format: PDF}.Path("/c"))
	assert.Equal(t, "/c/week9/lifetimes.md", SourcePath("/c", lifetimes))
	assert.Equal(t, "/c/week9/lifetimes-light-temp.md", TempSourcePath("/c", lifetimes))
	assert.Equal(t, "lifetimes-light-temp.md", TempSourceName(lifetimes))
}
