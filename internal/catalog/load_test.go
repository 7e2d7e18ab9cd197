// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-getter/v2"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlCatalog = `
topics:
  - key: 2
    name: ownership
  - key: 1
    name: introduction
    directory: intro
`

const hclCatalog = `
topic "introduction" {
  key       = 1
  directory = "intro"
}

topic "ownership" {
  key = 2
}
`

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
	}{
		{name: "yaml", file: "catalog.yaml", data: yamlCatalog},
		{name: "yml", file: "catalog.yml", data: yamlCatalog},
		{name: "hcl", file: "catalog.hcl", data: hclCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.file, []byte(tt.data))
			require.NoError(t, err)

			assert.Equal(t, []Topic{
				{Key: 1, Directory: "intro", Name: "introduction"},
				{Key: 2, Directory: "week2", Name: "ownership"},
			}, c.All())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    string
		wantErr error
	}{
		{name: "unsupported extension", file: "catalog.toml", data: "", wantErr: ErrUnsupportedFormat},
		{name: "bad yaml", file: "c.yaml", data: "topics: [", wantErr: ErrDecodeCatalog},
		{name: "unknown yaml field", file: "c.yaml", data: "topics:\n  - key: 1\n    name: a\n    colour: red\n", wantErr: ErrDecodeCatalog},
		{name: "bad hcl", file: "c.hcl", data: `topic "a" {`, wantErr: ErrDecodeCatalog},
		{name: "hcl missing key", file: "c.hcl", data: `topic "a" {}`, wantErr: ErrDecodeCatalog},
		{name: "duplicate keys", file: "c.yaml", data: "topics:\n  - {key: 1, name: a}\n  - {key: 1, name: b}\n", wantErr: ErrInvalidCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.file, []byte(tt.data))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_LocalFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/course/decks.yaml", []byte(yamlCatalog), 0o644))

	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	c, err := Load(context.Background(), "/course/decks.yaml")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(afero.NewMemMapFs(), "/nope.yaml")
	assert.ErrorIs(t, err, ErrReadCatalog)
}

func TestLoad_InvalidURL(t *testing.T) {
	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return afero.NewMemMapFs() })
	defer stubs.Reset()

	_, err := Load(context.Background(), "")
	assert.ErrorIs(t, err, ErrReadCatalog)
}

func TestParseRemote(t *testing.T) {
	tests := []struct {
		src     string
		want    remoteCatalog
		wantErr bool
	}{
		{
			src:  "git::https://github.com/org/repo//decks/catalog.yaml?ref=main",
			want: remoteCatalog{src: "git::https://github.com/org/repo?ref=main", file: "decks/catalog.yaml", mode: getter.ModeDir},
		},
		{
			src:  "git::https://github.com/org/repo//catalog.hcl",
			want: remoteCatalog{src: "git::https://github.com/org/repo", file: "catalog.hcl", mode: getter.ModeDir},
		},
		{
			src:  "https://example.com/course/catalog.yaml?token=abc",
			want: remoteCatalog{src: "https://example.com/course/catalog.yaml?token=abc", file: "catalog.yaml", mode: getter.ModeFile},
		},
		{src: "git::https://github.com/org/repo//decks/", wantErr: true},
		{src: "git::https://github.com/org/repo//../catalog.yaml", wantErr: true},
		{src: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := parseRemote(tt.src)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrReadCatalog)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_UnsupportedRemoteFormat(t *testing.T) {
	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return afero.NewMemMapFs() })
	defer stubs.Reset()

	_, err := Load(context.Background(), "https://example.invalid/catalog.toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad_FetchedFile(t *testing.T) {
	// Not on FsFactory, so the source goes through go-getter.
	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return afero.NewMemMapFs() })
	defer stubs.Reset()

	src := filepath.Join(t.TempDir(), "catalog.hcl")
	require.NoError(t, os.WriteFile(src, []byte(hclCatalog), 0o644))

	c, err := Load(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, []Topic{
		{Key: 1, Directory: "intro", Name: "introduction"},
		{Key: 2, Directory: "week2", Name: "ownership"},
	}, c.All())
}
