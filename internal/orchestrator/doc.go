// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package orchestrator selects the topics to build and runs one job per topic on a
// bounded worker pool.
//
// Cancellation is cooperative. Once the build context is cancelled no further job
// starts, jobs already running stop at their next checkpoint, and Run waits for them
// before returning the report.
package orchestrator
