// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build unix

package render

import "syscall"

// sysProcAttr puts the renderer in its own process group so a terminal interrupt
// reaches only this process, which then stops scheduling new work.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}
