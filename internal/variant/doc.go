// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package variant renders all formats of one visual variant of a topic.
//
// The source document is authored in the dark theme and is never modified. The light
// variant is rendered from a transformed copy, <name>-light-temp.md, which exists only
// for the duration of a RenderVariant call and is removed on every return path.
package variant
