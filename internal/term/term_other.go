// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

//go:build !(darwin || dragonfly || freebsd || netbsd || openbsd || linux)

// Package term detects whether a file descriptor refers to a terminal.
package term

// IsTerminal reports false on platforms without termios support.
func IsTerminal(fd uintptr) bool { return false }
