// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI escape codes for the build summary and the console
// log handler. Colour is on when FORCE_COLOR is set, off when NO_COLOR is set (NO_COLOR wins),
// and otherwise follows whether stdout is a terminal.
package color
