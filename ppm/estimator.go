// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package ppm

// Stat is the count of a symbol in a context.
type Stat struct {
	Symbol byte
	Freq   uint32
}

// Table is the cumulative frequency table of a context after exclusion.
// The interval of Symbols[i] is [Cum[i], Cum[i+1]). The escape interval
// follows the last symbol and has the width Esc.
type Table struct {
	Symbols []byte
	Cum     []uint32
	Esc     uint32
}

// Estimate computes the table for stats, ignoring all symbols in ex. The
// escape frequency is the number of distinct symbols remaining in the
// table. The argument ex may be nil.
func Estimate(stats []Stat, ex *Exclusion, t *Table) {
	t.Symbols = t.Symbols[:0]
	t.Cum = append(t.Cum[:0], 0)
	var c uint32
	for _, s := range stats {
		if ex != nil && ex.Has(s.Symbol) {
			continue
		}
		t.Symbols = append(t.Symbols, s.Symbol)
		c += s.Freq
		t.Cum = append(t.Cum, c)
	}
	t.Esc = uint32(len(t.Symbols))
}

// Len returns the number of symbols in the table.
func (t *Table) Len() int { return len(t.Symbols) }

// Total returns the sum of all symbol frequencies and the escape
// frequency.
func (t *Table) Total() uint32 {
	return t.Cum[len(t.Symbols)] + t.Esc
}

// Find returns the index of sym in the table or -1 if the symbol is not
// present.
func (t *Table) Find(sym byte) int {
	for i, c := range t.Symbols {
		if c == sym {
			return i
		}
	}
	return -1
}

// Search returns the index i of the symbol with Cum[i] <= count <
// Cum[i+1]. The value Len() is returned for counts in the escape interval.
func (t *Table) Search(count uint32) int {
	n := len(t.Symbols)
	if count >= t.Cum[n] {
		return n
	}
	lo, hi := 0, n
	for lo+1 < hi {
		m := int(uint(lo+hi) >> 1)
		if t.Cum[m] <= count {
			lo = m
		} else {
			hi = m
		}
	}
	return lo
}
