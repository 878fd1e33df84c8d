// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package rc

import (
	"errors"
	"io"
)

// ErrCorrupt indicates a byte stream that could not have been produced by
// the encoder.
var ErrCorrupt = errors.New("rc: corrupted stream")

// Decoder reads the stream produced by the [Encoder].
type Decoder struct {
	r      io.ByteReader
	range_ uint32
	code   uint32
}

// NewDecoder creates a decoder. Init must be called before the first
// symbol can be decoded.
func NewDecoder(r io.ByteReader) *Decoder {
	return &Decoder{r: r}
}

// Init reads the first five bytes of the stream.
func (d *Decoder) Init() error {
	d.range_ = 0xffffffff
	d.code = 0

	b, err := d.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	if b != 0 {
		return ErrCorrupt
	}

	for i := 0; i < 4; i++ {
		if err = d.updateCode(); err != nil {
			return err
		}
	}

	if d.code >= d.range_ {
		return ErrCorrupt
	}

	return nil
}

func (d *Decoder) updateCode() error {
	b, err := d.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	d.code = (d.code << 8) | uint32(b)
	return nil
}

func (d *Decoder) normalize() error {
	// assume d.code < d.range_
	for d.range_ < top {
		d.range_ <<= 8
		// d.code < d.range_ will be maintained
		if err := d.updateCode(); err != nil {
			return err
		}
	}
	return nil
}

// Decode decodes a bit using the probability p and updates p the same way
// the encoder did.
func (d *Decoder) Decode(p *Prob) (b Bit, err error) {
	bound := p.Bound(d.range_)
	if d.code < bound {
		d.range_ = bound
		p.Inc()
		b = 0
	} else {
		d.code -= bound
		d.range_ -= bound
		p.Dec()
		b = 1
	}

	// d.code will stay less then d.range_

	if err = d.normalize(); err != nil {
		return 0, err
	}
	return b, nil
}

// Threshold returns the cumulative frequency identifying the interval that
// contains the current code. The value is in the range [0,total). The call
// must be followed by DecodeFreq for the interval that contains the
// returned value.
func (d *Decoder) Threshold(total uint32) (uint32, error) {
	if !(0 < total && total <= MaxTotal) {
		panic("rc: total out of range")
	}
	d.range_ /= total
	c := d.code / d.range_
	if c >= total {
		return 0, ErrCorrupt
	}
	return c, nil
}

// DecodeFreq removes the interval [start, start+size) from the code. The
// total has been provided to the preceding Threshold call.
func (d *Decoder) DecodeFreq(start, size uint32) error {
	d.code -= start * d.range_
	d.range_ *= size
	return d.normalize()
}
