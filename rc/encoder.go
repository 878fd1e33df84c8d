// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Package rc implements the range coder used by the PPMd model. It
// supports the coding of intervals of cumulative frequency tables and
// of single bits with adaptive probabilities. Both can be mixed on the
// same stream.
package rc

import (
	"fmt"
	"io"
)

// Bit represents a single bit. The bit is set if the least significant bit
// of the value is set.
type Bit byte

// Test tests whether the bit is set.
func (b Bit) Test() bool {
	return b&1 != 0
}

// moveBits defines the number of bits used for the updates of probability
// values.
const moveBits = 5

// ProbBits defines the number of bits of a probability value.
const ProbBits = 11

// Initial value for a probability value. It is 0.5.
const ProbInit Prob = 1 << (ProbBits - 1)

// Type Prob represents the probability of a zero bit.
type Prob uint16

// Dec decreases the probability. The decrease is proportional to the
// probability value.
func (p *Prob) Dec() {
	*p -= *p >> moveBits
}

// Inc increases the probability. The Increase is proportional to the
// difference of 1 and the probability value.
func (p *Prob) Inc() {
	*p += ((1 << ProbBits) - *p) >> moveBits
}

// Computes the new bound for a given range using the probability value.
func (p Prob) Bound(r uint32) uint32 {
	return (r >> ProbBits) * uint32(p)
}

// MaxTotal is the largest total frequency supported by the frequency
// coding. The range never drops below top, so every interval keeps a
// width of at least 256 after the division by the total.
const MaxTotal = 1 << 16

// top is the bound for the range below which the coder renormalizes.
const top = 1 << 24

// Encoder encodes intervals and bits into a byte stream. The low value can
// overflow therefore we need uint64. The cache value is used to handle
// the overflows.
type Encoder struct {
	w         io.ByteWriter
	range_    uint32
	low       uint64
	cacheSize int64
	cache     byte
	n         int64
}

// NewEncoder creates a new encoder writing to w.
func NewEncoder(w io.ByteWriter) *Encoder {
	return &Encoder{w: w, range_: 0xffffffff, cacheSize: 1}
}

// Len returns the number of bytes written to the underlying writer.
func (e *Encoder) Len() int64 { return e.n }

func (e *Encoder) shiftLow() error {
	if uint32(e.low) < 0xff000000 || (e.low>>32) != 0 {
		tmp := e.cache
		for {
			err := e.w.WriteByte(tmp + byte(e.low>>32))
			if err != nil {
				return err
			}
			e.n++
			tmp = 0xff
			e.cacheSize--
			if e.cacheSize <= 0 {
				if e.cacheSize < 0 {
					panic("negative e.cacheSize")
				}
				break
			}
		}
		e.cache = byte(uint32(e.low) >> 24)
	}
	e.cacheSize++
	e.low = uint64(uint32(e.low) << 8)
	return nil
}

func (e *Encoder) normalize() error {
	for e.range_ < top {
		e.range_ <<= 8
		if err := e.shiftLow(); err != nil {
			return err
		}
	}
	return nil
}

// Encode encodes the bit b using the probability p. The probability is
// updated afterwards.
func (e *Encoder) Encode(b Bit, p *Prob) error {
	bound := p.Bound(e.range_)
	if !b.Test() {
		e.range_ = bound
		p.Inc()
	} else {
		e.low += uint64(bound)
		e.range_ -= bound
		p.Dec()
	}
	return e.normalize()
}

// EncodeFreq encodes the interval [start, start+size) of a cumulative
// frequency table with the given total.
func (e *Encoder) EncodeFreq(start, size, total uint32) error {
	if !(0 < size && start+size <= total && total <= MaxTotal) {
		panic(fmt.Errorf("rc: invalid interval [%d,%d) of total %d",
			start, start+size, total))
	}
	e.range_ /= total
	e.low += uint64(start) * uint64(e.range_)
	e.range_ *= size
	return e.normalize()
}

// Flush writes a complete copy of the low value. The encoder must not be
// used afterwards.
func (e *Encoder) Flush() error {
	for i := 0; i < 5; i++ {
		if err := e.shiftLow(); err != nil {
			return err
		}
	}
	return nil
}
