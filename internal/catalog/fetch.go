// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/spf13/afero"
)

// remoteCatalog locates a catalog file behind a go-getter source.
//
// A source with a subdirectory, such as git::https://host/repo//decks/catalog.yaml?ref=main,
// names a file inside a repository: the repository is fetched as a directory and the file
// read from it. Any other source names the catalog file itself and is fetched as one file.
type remoteCatalog struct {
	src  string
	file string
	mode getter.Mode
}

func parseRemote(src string) (remoteCatalog, error) {
	if src == "" {
		return remoteCatalog{}, fmt.Errorf("%w: empty source", ErrReadCatalog)
	}

	repo, sub := getter.SourceDirSubdir(src)
	if sub == "" {
		base, _, _ := strings.Cut(src, "?")

		return remoteCatalog{src: src, file: path.Base(base), mode: getter.ModeFile}, nil
	}

	file := path.Clean(sub)
	if strings.HasSuffix(sub, "/") || file == "." || strings.HasPrefix(file, "..") {
		return remoteCatalog{}, fmt.Errorf("%w: %s does not name a catalog file", ErrReadCatalog, src)
	}

	return remoteCatalog{src: repo, file: file, mode: getter.ModeDir}, nil
}

// fetchRemote downloads the catalog named by src into a scratch directory and decodes it.
// The format is checked before anything is downloaded.
func fetchRemote(ctx context.Context, src string) (*Catalog, error) {
	rc, err := parseRemote(src)
	if err != nil {
		return nil, err
	}

	if !supported(rc.file) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, src)
	}

	scratch := afero.NewOsFs()

	tmpDir, err := afero.TempDir(scratch, "", "decks-catalog-")
	if err != nil {
		return nil, errors.Join(ErrReadCatalog, err)
	}

	defer scratch.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrReadCatalog, err)
	}

	req := &getter.Request{
		Src:     rc.src,
		Pwd:     wd,
		GetMode: rc.mode,
		Copy:    true,
	}

	root := tmpDir
	if rc.mode == getter.ModeDir {
		root = filepath.Join(tmpDir, "src")
		req.Dst = root
	} else {
		req.Dst = filepath.Join(tmpDir, rc.file)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	if _, err := client.Get(ctx, req); err != nil {
		return nil, errors.Join(ErrReadCatalog, err)
	}

	return LoadFile(afero.NewBasePathFs(scratch, root), rc.file)
}
