// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package term

import "golang.org/x/sys/unix"

const ioctlGetTermios = unix.TCGETS
