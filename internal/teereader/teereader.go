// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teereader

import (
	"bytes"
	"io"
	"strings"
	"sync"
)

// LastLineReader passes reads through unchanged and tracks the last complete line.
// LastLine may be called concurrently with Read.
type LastLineReader struct {
	r       io.Reader
	mu      sync.RWMutex
	last    string
	partial []byte
}

// New returns a LastLineReader reading from r.
func New(r io.Reader) *LastLineReader {
	return &LastLineReader{r: r}
}

// Read implements io.Reader.
func (l *LastLineReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	if n > 0 {
		l.observe(p[:n])
	}

	return n, err //nolint:wrapcheck
}

func (l *LastLineReader) observe(data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := bytes.LastIndexByte(data, '\n')
	if i < 0 {
		l.partial = append(l.partial, data...)
		return
	}

	complete := append(l.partial, data[:i]...)
	if j := bytes.LastIndexByte(complete, '\n'); j >= 0 {
		complete = complete[j+1:]
	}

	l.last = strings.TrimRight(string(complete), "\r")
	l.partial = append(l.partial[:0], data[i+1:]...)
}

// LastLine returns the last complete line read, without its line ending.
// A positive maxLength truncates longer lines and marks them with "...".
func (l *LastLineReader) LastLine(maxLength int) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if maxLength > 3 && len(l.last) > maxLength {
		return l.last[:maxLength-3] + "..."
	}

	return l.last
}
