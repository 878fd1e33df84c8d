// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Package arena provides the bounded memory pool used by the PPMd context
// model. The pool is a single byte slice sized by a budget in megabytes.
// Blocks are handed out as uint32 offsets into the pool in multiples of
// [UnitSize] bytes. Released blocks are kept in free lists, one per unit
// count, and the whole pool can be reset in constant time.
//
// Offset zero is never returned by an allocation and can be used as nil
// handle.
package arena

import (
	"errors"
	"fmt"
)

// UnitSize is the allocation granularity in bytes. A unit holds a context
// record or two symbol states.
const UnitSize = 12

// MaxUnits is the largest number of units a single block may have. It is
// sufficient for the states of all 256 byte values.
const MaxUnits = 128

// Range of supported budgets in megabytes.
const (
	MinBudgetMB = 1
	MaxBudgetMB = 256
)

// ErrOutOfMemory is returned by allocations that cannot be served from the
// pool. The model handles it by a restart.
var ErrOutOfMemory = errors.New("arena: out of memory")

// ErrBudget indicates a memory budget outside of the supported range.
var ErrBudget = errors.New("arena: budget out of range")

// Arena is a fixed capacity memory pool. It is not safe for concurrent use.
type Arena struct {
	buf      []byte
	budgetMB int
	// hi is the high-water mark; all bytes at and above hi are unused.
	hi uint32
	// free contains the heads of the free lists indexed by unit count.
	// The first four bytes of a free block link to the next block.
	free      [MaxUnits + 1]uint32
	freeBytes int
}

// New reserves a pool of budgetMB megabytes.
func New(budgetMB int) (a *Arena, err error) {
	if !(MinBudgetMB <= budgetMB && budgetMB <= MaxBudgetMB) {
		return nil, fmt.Errorf("%w: %d MB not in range [%d,%d]",
			ErrBudget, budgetMB, MinBudgetMB, MaxBudgetMB)
	}
	a = &Arena{
		buf:      make([]byte, budgetMB<<20),
		budgetMB: budgetMB,
	}
	a.Reset()
	return a, nil
}

// Reset releases all blocks at once. All offsets returned before become
// invalid. The operation doesn't depend on the number of allocated blocks.
func (a *Arena) Reset() {
	a.hi = UnitSize
	a.free = [MaxUnits + 1]uint32{}
	a.freeBytes = 0
}

// units computes the number of units required for size bytes.
func units(size int) int {
	n := (size + UnitSize - 1) / UnitSize
	if !(1 <= n && n <= MaxUnits) {
		panic(fmt.Errorf("arena: block size %d not supported", size))
	}
	return n
}

// Alloc returns a zeroed block of at least size bytes. It returns
// ErrOutOfMemory if the block doesn't fit into the pool.
func (a *Arena) Alloc(size int) (off uint32, err error) {
	n := units(size)
	k := n * UnitSize
	if off = a.free[n]; off != 0 {
		a.free[n] = a.Uint32(off)
		a.freeBytes -= k
	} else {
		if uint64(a.hi)+uint64(k) > uint64(len(a.buf)) {
			return 0, ErrOutOfMemory
		}
		off = a.hi
		a.hi += uint32(k)
	}
	clear(a.buf[off : off+uint32(k)])
	return off, nil
}

// Free puts the block at offset off with the given size into the free
// list for its unit count.
func (a *Arena) Free(off uint32, size int) {
	if off == 0 {
		panic("arena: free of nil offset")
	}
	n := units(size)
	a.PutUint32(off, a.free[n])
	a.free[n] = off
	a.freeBytes += n * UnitSize
}

// Expand moves the block at off with size bytes into a new block of
// newSize bytes. The old block is freed. If the allocation fails the old
// block stays valid.
func (a *Arena) Expand(off uint32, size, newSize int) (uint32, error) {
	if newSize < size {
		panic("arena: expand must not shrink")
	}
	if units(size) == units(newSize) {
		return off, nil
	}
	p, err := a.Alloc(newSize)
	if err != nil {
		return 0, err
	}
	copy(a.buf[p:p+uint32(size)], a.buf[off:off+uint32(size)])
	a.Free(off, size)
	return p, nil
}

// Used returns the number of bytes currently allocated.
func (a *Arena) Used() int {
	return int(a.hi) - UnitSize - a.freeBytes
}

// HighWater returns the offset of the first byte that has never been
// allocated since the last reset.
func (a *Arena) HighWater() int { return int(a.hi) }

// Cap returns the capacity of the pool in bytes.
func (a *Arena) Cap() int { return len(a.buf) }

// BudgetMB returns the budget the pool has been created with.
func (a *Arena) BudgetMB() int { return a.budgetMB }

// Byte returns the byte at offset off.
func (a *Arena) Byte(off uint32) byte { return a.buf[off] }

// PutByte sets the byte at offset off.
func (a *Arena) PutByte(off uint32, c byte) { a.buf[off] = c }

// Uint16 reads a little-endian uint16 at offset off.
func (a *Arena) Uint16(off uint32) uint16 { return getLE16(a.buf[off:]) }

// PutUint16 writes x as little-endian uint16 at offset off.
func (a *Arena) PutUint16(off uint32, x uint16) { putLE16(a.buf[off:], x) }

// Uint32 reads a little-endian uint32 at offset off.
func (a *Arena) Uint32(off uint32) uint32 { return getLE32(a.buf[off:]) }

// PutUint32 writes x as little-endian uint32 at offset off.
func (a *Arena) PutUint32(off uint32, x uint32) { putLE32(a.buf[off:], x) }
