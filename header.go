// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package ppmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/ulikunitz/ppmd/arena"
	"github.com/ulikunitz/ppmd/ppm"
)

// signature starts every compressed stream.
const signature = "PPMD_A"

// fixedHeaderLen is the length of the header without the name.
const fixedHeaderLen = len(signature) + 1 + 1 + 4

// MaxNameLen is the maximum length of the stored file name.
const MaxNameLen = 1<<16 - 1

// Header describes the parameters of a compressed stream.
type Header struct {
	// Order is the maximum model order.
	Order int
	// MemoryMB is the memory budget of the model in megabytes.
	MemoryMB int
	// Name is the name of the original file. It may be empty.
	Name string
}

var errSignature = errors.New("ppmd: invalid signature")

func (h *Header) verify() error {
	if !(ppm.MinOrder <= h.Order && h.Order <= ppm.MaxOrder) {
		return fmt.Errorf("ppmd: order %d not in range [%d,%d]",
			h.Order, ppm.MinOrder, ppm.MaxOrder)
	}
	if !(arena.MinBudgetMB <= h.MemoryMB && h.MemoryMB <= arena.MaxBudgetMB) {
		return fmt.Errorf("ppmd: memory %d MB not in range [%d,%d]",
			h.MemoryMB, arena.MinBudgetMB, arena.MaxBudgetMB)
	}
	if len(h.Name) > MaxNameLen {
		return fmt.Errorf("ppmd: name length %d exceeds %d",
			len(h.Name), MaxNameLen)
	}
	return nil
}

// MarshalBinary encodes the header.
func (h *Header) MarshalBinary() (data []byte, err error) {
	if err = h.verify(); err != nil {
		return nil, &Error{Kind: ConfigError, Op: "header", Err: err}
	}
	data = make([]byte, fixedHeaderLen, fixedHeaderLen+len(h.Name))
	copy(data, signature)
	data[6] = byte(h.Order)
	data[7] = byte(h.MemoryMB - 1)
	putUint32LE(data[8:], uint32(len(h.Name)))
	data = append(data, h.Name...)
	return data, nil
}

// UnmarshalBinary decodes the header from data. The data must contain the
// complete header.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < fixedHeaderLen {
		return &Error{Kind: FormatError, Op: "header",
			Err: io.ErrUnexpectedEOF}
	}
	if string(data[:len(signature)]) != signature {
		return &Error{Kind: FormatError, Op: "header", Err: errSignature}
	}
	n := uint32LE(data[8:])
	if n > MaxNameLen {
		return &Error{Kind: FormatError, Op: "header",
			Err: fmt.Errorf("name length %d exceeds %d", n, MaxNameLen)}
	}
	if len(data) != fixedHeaderLen+int(n) {
		return &Error{Kind: FormatError, Op: "header",
			Err: errors.New("header length mismatch")}
	}
	g := Header{
		Order:    int(data[6]),
		MemoryMB: int(data[7]) + 1,
		Name:     string(data[fixedHeaderLen:]),
	}
	// A well-formed header may carry parameters this package doesn't
	// support.
	if err := g.verify(); err != nil {
		return &Error{Kind: ConfigError, Op: "header", Err: err}
	}
	*h = g
	return nil
}

// readHeader reads the header from r. The name length is checked before
// the name is allocated.
func readHeader(r io.Reader) (h Header, err error) {
	p := make([]byte, fixedHeaderLen, fixedHeaderLen+64)
	if _, err = io.ReadFull(r, p); err != nil {
		return h, headerReadError(err)
	}
	if string(p[:len(signature)]) != signature {
		return h, &Error{Kind: FormatError, Op: "header",
			Err: errSignature}
	}
	n := uint32LE(p[8:])
	if n > MaxNameLen {
		return h, &Error{Kind: FormatError, Op: "header",
			Err: fmt.Errorf("name length %d exceeds %d", n, MaxNameLen)}
	}
	p = append(p, make([]byte, n)...)
	if _, err = io.ReadFull(r, p[fixedHeaderLen:]); err != nil {
		return h, headerReadError(err)
	}
	err = h.UnmarshalBinary(p)
	return h, err
}

func headerReadError(err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return decodeError("header", err)
}

// uint32LE reads an uint32 integer from a byte slice.
func uint32LE(b []byte) uint32 {
	x := uint32(b[3]) << 24
	x |= uint32(b[2]) << 16
	x |= uint32(b[1]) << 8
	x |= uint32(b[0])
	return x
}

// putUint32LE puts an uint32 integer into a byte slice that must have at
// least a length of 4 bytes.
func putUint32LE(b []byte, x uint32) {
	b[0] = byte(x)
	b[1] = byte(x >> 8)
	b[2] = byte(x >> 16)
	b[3] = byte(x >> 24)
}
