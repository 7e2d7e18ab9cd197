// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package metrics records build observations.
//
// Components hold a Recorder and default to NoopRecorder, so no call site needs a nil
// check. PrometheusRecorder collects into a registry that is written out as a
// node-exporter textfile once the run has finished.
package metrics
