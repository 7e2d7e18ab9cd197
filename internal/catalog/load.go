// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"
)

var (
	// ErrReadCatalog is returned when the catalog file cannot be read or fetched.
	ErrReadCatalog = errors.New("failed to read catalog file")
	// ErrDecodeCatalog is returned when the catalog file cannot be decoded.
	ErrDecodeCatalog = errors.New("failed to decode catalog file")
	// ErrUnsupportedFormat is returned for catalog files that are neither YAML nor HCL.
	ErrUnsupportedFormat = errors.New("unsupported catalog format, expected .yaml, .yml or .hcl")
)

// FsFactory returns the filesystem local catalog files are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// file is the on-disk catalog representation, shared by both decoders:
//
//	topics:                      topic "introduction" {
//	  - key: 1                     key       = 1
//	    name: introduction         directory = "week1"
//	    directory: week1         }
type file struct {
	Topics []fileTopic `yaml:"topics" hcl:"topic,block"`
}

type fileTopic struct {
	Name      string `yaml:"name" hcl:"name,label"`
	Key       int    `yaml:"key" hcl:"key"`
	Directory string `yaml:"directory,omitempty" hcl:"directory,optional"`
}

// Load reads a catalog from src. A path that exists on the local filesystem is read
// directly; anything else is treated as a go-getter URL.
func Load(ctx context.Context, src string) (*Catalog, error) {
	fs := FsFactory()

	if _, err := fs.Stat(src); err == nil {
		return LoadFile(fs, src)
	}

	return fetchRemote(ctx, src)
}

// LoadFile reads and decodes the catalog file at path.
func LoadFile(fs afero.Fs, path string) (*Catalog, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Join(ErrReadCatalog, err)
	}

	return Parse(path, data)
}

func supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".hcl":
		return true
	default:
		return false
	}
}

// Parse decodes data, choosing the decoder from the extension of name.
func Parse(name string, data []byte) (*Catalog, error) {
	var f file

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(data, &f, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDecodeCatalog, name, err)
		}
	case ".hcl":
		if err := hclsimple.Decode(filepath.Base(name), data, nil, &f); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDecodeCatalog, name, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}

	topics := make([]Topic, len(f.Topics))
	for i, t := range f.Topics {
		dir := t.Directory
		if dir == "" {
			dir = WeekDirectory(t.Key)
		}

		topics[i] = Topic{Key: t.Key, Directory: dir, Name: t.Name}
	}

	return New(topics...)
}
