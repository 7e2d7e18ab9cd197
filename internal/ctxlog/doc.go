// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a structured slog logger through a context.Context.
//
// The default logger writes to stderr using a console handler that renders the record
// attributes as indented, optionally coloured JSON. The level is read once from the
// DECKS_LOG_LEVEL environment variable and can be changed at runtime through LevelVar.
package ctxlog
