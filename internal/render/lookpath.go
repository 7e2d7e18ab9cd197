// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrToolNotFound is returned when the render tool is not an executable on PATH.
var ErrToolNotFound = errors.New("render tool not found")

// windowsExts are tried in order when resolving a bare tool name on Windows,
// where npm installs marp as marp.cmd.
var windowsExts = []string{"", ".exe", ".cmd", ".bat"}

// LookPath resolves tool to an absolute executable path. A tool containing a path
// separator is checked as given; a bare name is searched for in the PATH directories.
// The result is absolute because renders run with the topic directory as their
// working directory.
func LookPath(tool string) (string, error) {
	if tool == "" {
		return "", fmt.Errorf("%w: empty tool name", ErrToolNotFound)
	}

	if strings.ContainsRune(tool, os.PathSeparator) || strings.ContainsRune(tool, '/') {
		if p, ok := executable(tool); ok {
			return absolute(p)
		}

		return "", fmt.Errorf("%w: %s", ErrToolNotFound, tool)
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			continue
		}

		if p, ok := executable(filepath.Join(dir, tool)); ok {
			return absolute(p)
		}
	}

	return "", fmt.Errorf("%w: %s is not on PATH", ErrToolNotFound, tool)
}

func absolute(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrToolNotFound, path, err)
	}

	return abs, nil
}

func executable(path string) (string, bool) {
	exts := []string{""}
	if runtime.GOOS == "windows" {
		exts = windowsExts
	}

	for _, ext := range exts {
		info, err := os.Stat(path + ext)
		if err != nil || info.IsDir() {
			continue
		}

		if runtime.GOOS != "windows" && info.Mode()&0o111 == 0 {
			continue
		}

		return path + ext, true
	}

	return "", false
}
