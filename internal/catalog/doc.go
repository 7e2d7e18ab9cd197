// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package catalog holds the static set of topics the build knows about.
//
// A topic is one slide deck: an ordinal key, a workspace directory and a document name.
// The catalog is immutable once created. It is either the built-in course layout
// returned by Default, or decoded from a YAML or HCL file, optionally fetched from a
// remote location with go-getter.
package catalog
