// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Package ppmd compresses and decompresses single byte streams using
// prediction by partial matching (PPMd).
//
// A compressed stream starts with a header containing the signature
// "PPMD_A", the model order, the memory budget and an optional file name.
// The range coder payload follows and is terminated by an explicit
// end-of-stream symbol.
//
// The model is kept in a memory pool of fixed size. If the pool is
// exhausted the model is restarted. The decoder needs the same amount of
// memory as the encoder, which is stored in the header.
package ppmd
