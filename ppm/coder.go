// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package ppm

import (
	"github.com/ulikunitz/ppmd/rc"
)

// symbolCoder is the part of a coding step that depends on the direction.
// The encoder gets the symbol and writes it, the decoder ignores the
// symbol argument and reads it.
type symbolCoder interface {
	// codeBinary codes whether the single symbol of a context is hit.
	codeBinary(p *rc.Prob, hit bool) (bool, error)
	// codeTable returns the index of the symbol in t or -1 for an
	// escape.
	codeTable(t *Table, sym int) (int, error)
	// codeFlat codes a symbol of the order -1 context. All symbols not
	// in ex have the frequency one.
	codeFlat(ex *Exclusion, sym int) (int, error)
}

type encoder struct {
	e *rc.Encoder
}

func (c *encoder) codeBinary(p *rc.Prob, hit bool) (bool, error) {
	var b rc.Bit
	if !hit {
		b = 1
	}
	return hit, c.e.Encode(b, p)
}

func (c *encoder) codeTable(t *Table, sym int) (int, error) {
	i := -1
	if sym < EOS {
		i = t.Find(byte(sym))
	}
	total := t.Total()
	if i < 0 {
		n := t.Len()
		return -1, c.e.EncodeFreq(t.Cum[n], t.Esc, total)
	}
	return i, c.e.EncodeFreq(t.Cum[i], t.Cum[i+1]-t.Cum[i], total)
}

func (c *encoder) codeFlat(ex *Exclusion, sym int) (int, error) {
	rank := uint32(sym)
	for i := 0; i < sym && i < 256; i++ {
		if ex.Has(byte(i)) {
			rank--
		}
	}
	total := uint32(EOS + 1 - ex.Len())
	return sym, c.e.EncodeFreq(rank, 1, total)
}

type decoder struct {
	d *rc.Decoder
}

func (c *decoder) codeBinary(p *rc.Prob, _ bool) (bool, error) {
	b, err := c.d.Decode(p)
	if err != nil {
		return false, err
	}
	return b == 0, nil
}

func (c *decoder) codeTable(t *Table, _ int) (int, error) {
	count, err := c.d.Threshold(t.Total())
	if err != nil {
		return 0, err
	}
	i := t.Search(count)
	if i == t.Len() {
		return -1, c.d.DecodeFreq(t.Cum[i], t.Esc)
	}
	return i, c.d.DecodeFreq(t.Cum[i], t.Cum[i+1]-t.Cum[i])
}

func (c *decoder) codeFlat(ex *Exclusion, _ int) (int, error) {
	total := uint32(EOS + 1 - ex.Len())
	rank, err := c.d.Threshold(total)
	if err != nil {
		return 0, err
	}
	r := rank
	sym := 0
	for ; sym < EOS; sym++ {
		if ex.Has(byte(sym)) {
			continue
		}
		if r == 0 {
			break
		}
		r--
	}
	return sym, c.d.DecodeFreq(rank, 1)
}
