// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package ppm

// Exclusion is the set of byte values ruled out while coding a single
// symbol. Reset runs in constant time by advancing a generation counter.
type Exclusion struct {
	stamp [256]uint32
	gen   uint32
	n     int
}

// Reset empties the set.
func (x *Exclusion) Reset() {
	x.gen++
	if x.gen == 0 {
		x.stamp = [256]uint32{}
		x.gen = 1
	}
	x.n = 0
}

// Add puts c into the set.
func (x *Exclusion) Add(c byte) {
	if x.gen == 0 {
		x.gen = 1
	}
	if x.stamp[c] == x.gen {
		return
	}
	x.stamp[c] = x.gen
	x.n++
}

// Has checks whether c is in the set.
func (x *Exclusion) Has(c byte) bool {
	return x.gen != 0 && x.stamp[c] == x.gen
}

// Len returns the number of excluded symbols.
func (x *Exclusion) Len() int { return x.n }
