// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package variant

import (
	"bytes"
	"regexp"
)

// invertDirective matches the marp "class: invert" directive, whether or not it has
// already been commented out.
var invertDirective = regexp.MustCompile(`(#[ \t]*)?class:[ \t]*invert`)

// LightTheme returns a copy of src with every active "class: invert" directive commented
// out, which switches marp from the inverted (dark) colour scheme to the default one.
// Directives that are already commented out are left alone, so the transform is
// idempotent.
func LightTheme(src []byte) []byte {
	return invertDirective.ReplaceAllFunc(src, func(m []byte) []byte {
		if m[0] == '#' {
			return m
		}

		return append([]byte("# "), m...)
	})
}

// hasInvert reports whether src contains an active "class: invert" directive.
func hasInvert(src []byte) bool {
	for _, m := range invertDirective.FindAll(src, -1) {
		if !bytes.HasPrefix(m, []byte("#")) {
			return true
		}
	}

	return false
}
