// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package render invokes the external tool that turns one source document and a shared
// configuration file into one output file.
//
// The tool is started with an explicit argument vector (no shell) and with its working
// directory set to the topic workspace, so relative image references in the document
// resolve and no process-wide working directory is ever changed. A render that is already
// running is never killed: cancellation is observed by the caller between renders.
package render
