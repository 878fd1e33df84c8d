// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package ppm

import (
	"fmt"

	"github.com/ulikunitz/ppmd/arena"
)

// Layout of a context record in the arena. A context uses exactly one
// unit.
//
//	[0:2]  number of states
//	[2]    order
//	[3]    reserved
//	[4:8]  offset of the state array
//	[8:12] suffix context
const (
	ctxNumStats = 0
	ctxOrder    = 2
	ctxStats    = 4
	ctxSuffix   = 8
	ctxSize     = arena.UnitSize
)

// Layout of a state. Two states share a unit.
//
//	[0]   symbol
//	[1]   frequency
//	[2:6] successor context
const (
	stSymbol    = 0
	stFreq      = 1
	stSuccessor = 2
	stateSize   = 6
)

func (m *Model) newContext(order int, suffix uint32) (uint32, error) {
	ctx, err := m.a.Alloc(ctxSize)
	if err != nil {
		return 0, err
	}
	m.a.PutByte(ctx+ctxOrder, byte(order))
	m.a.PutUint32(ctx+ctxSuffix, suffix)
	return ctx, nil
}

func (m *Model) numStats(ctx uint32) int { return int(m.a.Uint16(ctx + ctxNumStats)) }

func (m *Model) order(ctx uint32) int { return int(m.a.Byte(ctx + ctxOrder)) }

func (m *Model) suffix(ctx uint32) uint32 { return m.a.Uint32(ctx + ctxSuffix) }

func (m *Model) statsOff(ctx uint32) uint32 { return m.a.Uint32(ctx + ctxStats) }

// state returns the offset of the i-th state of the context.
func (m *Model) state(ctx uint32, i int) uint32 {
	return m.statsOff(ctx) + uint32(i*stateSize)
}

func (m *Model) symbol(s uint32) byte { return m.a.Byte(s + stSymbol) }

func (m *Model) freq(s uint32) int { return int(m.a.Byte(s + stFreq)) }

func (m *Model) setFreq(s uint32, f int) { m.a.PutByte(s+stFreq, byte(f)) }

func (m *Model) successor(s uint32) uint32 { return m.a.Uint32(s + stSuccessor) }

// findState returns the offset of the state for sym in ctx or zero.
func (m *Model) findState(ctx uint32, sym byte) uint32 {
	n := m.numStats(ctx)
	s := m.statsOff(ctx)
	for i := 0; i < n; i++ {
		if m.symbol(s) == sym {
			return s
		}
		s += stateSize
	}
	return 0
}

// loadStats copies the states of ctx into m.stats.
func (m *Model) loadStats(ctx uint32) []Stat {
	n := m.numStats(ctx)
	m.stats = m.stats[:0]
	s := m.statsOff(ctx)
	for i := 0; i < n; i++ {
		m.stats = append(m.stats, Stat{
			Symbol: m.symbol(s),
			Freq:   uint32(m.freq(s)),
		})
		s += stateSize
	}
	return m.stats
}

// addSymbol appends sym with frequency one to ctx. Below the maximum order
// the context for the extended history is created as successor. Its suffix
// is the successor of sym in the suffix of ctx, which must exist.
func (m *Model) addSymbol(ctx uint32, sym byte) error {
	var succ uint32
	if o := m.order(ctx); o < m.maxOrder {
		childSuffix := m.root
		if sfx := m.suffix(ctx); sfx != 0 {
			s := m.findState(sfx, sym)
			if s == 0 {
				panic(fmt.Errorf("ppm: symbol %#02x missing in suffix"+
					" of order %d context", sym, o))
			}
			childSuffix = m.successor(s)
		}
		var err error
		if succ, err = m.newContext(o+1, childSuffix); err != nil {
			return err
		}
	}

	n := m.numStats(ctx)
	p := m.statsOff(ctx)
	var err error
	switch {
	case n == 0:
		p, err = m.a.Alloc(stateSize)
	case n%2 == 0:
		p, err = m.a.Expand(p, n*stateSize, (n+1)*stateSize)
	}
	if err != nil {
		return err
	}
	s := p + uint32(n*stateSize)
	m.a.PutByte(s+stSymbol, sym)
	m.a.PutByte(s+stFreq, 1)
	m.a.PutUint32(s+stSuccessor, succ)
	m.a.PutUint32(ctx+ctxStats, p)
	m.a.PutUint16(ctx+ctxNumStats, uint16(n+1))
	return nil
}

// increment adds two to the frequency of the state s in ctx and rescales
// the context if the frequency exceeds MaxFreq.
func (m *Model) increment(ctx, s uint32) {
	f := m.freq(s) + 2
	m.setFreq(s, f)
	if f > MaxFreq {
		m.rescale(ctx)
	}
}

// rescale halves all frequencies of the context. Frequencies are rounded
// up so no symbol drops to zero.
func (m *Model) rescale(ctx uint32) {
	n := m.numStats(ctx)
	s := m.statsOff(ctx)
	for i := 0; i < n; i++ {
		m.setFreq(s, (m.freq(s)+1)/2)
		s += stateSize
	}
}
