// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package job builds every artifact of a single topic and converts whatever happens
// along the way into an Outcome. Nothing a job does escapes as an error or a panic.
package job
