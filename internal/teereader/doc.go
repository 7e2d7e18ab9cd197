// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package teereader wraps a reader and remembers the last complete line read through it,
// so a long running render can report what the tool last printed.
package teereader
