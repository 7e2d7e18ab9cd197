// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !unix

package render

import "syscall"

func sysProcAttr() *syscall.SysProcAttr {
	return nil
}
