// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

//go:build !windows

package main

import (
	"os"
	"syscall"
)

// termsigs contains the signals indicating termination of the program.
// The handler removes the temporary file before exiting.
var termsigs = []os.Signal{
	syscall.SIGHUP,
	syscall.SIGINT,
	syscall.SIGQUIT,
	syscall.SIGPIPE,
	syscall.SIGTERM,
	syscall.SIGXCPU,
	syscall.SIGXFSZ,
}
