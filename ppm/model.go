// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Package ppm implements the context model of the PPMd compressor. The
// model predicts the next byte from up to MaxOrder preceding bytes. It is
// stored as a suffix trie inside an [arena.Arena] and drives a range coder
// for encoding and decoding.
//
// Symbols unseen in a context are coded with an escape followed by the
// next shorter context. Symbols already offered by longer contexts are
// excluded from the shorter ones. After order 0 an implicit order -1
// context codes all byte values and the end-of-stream symbol EOS with
// equal probabilities.
package ppm

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ulikunitz/ppmd/arena"
	"github.com/ulikunitz/ppmd/rc"
)

// Supported model orders.
const (
	MinOrder = 2
	MaxOrder = 16
)

// EOS is the end-of-stream symbol. It is only coded in the order -1
// context.
const EOS = 256

// MaxFreq is the largest frequency of a symbol. Exceeding it halves the
// frequencies of the context. The limit applies to the single symbol,
// not to the total of the context; with at most 256 symbols the total
// stays below rc.MaxTotal.
const MaxFreq = 124

// numFreqBuckets is the number of frequency classes for the probabilities
// of binary contexts.
const numFreqBuckets = 32

// Model is the adaptive context model. Encoder and decoder need models
// with the same order and arena budget that see the same symbol sequence.
// A Model is not safe for concurrent use.
type Model struct {
	a        *arena.Arena
	maxOrder int
	log      logrus.FieldLogger

	root   uint32
	maxCtx uint32

	// binProbs are the probabilities for contexts with a single symbol,
	// indexed by frequency bucket and order.
	binProbs [numFreqBuckets][MaxOrder + 1]rc.Prob

	restarts int

	// scratch space for a single coding step
	ex    Exclusion
	table Table
	stats []Stat
	path  []uint32

	enc encoder
	dec decoder
}

// NewModel creates a model of the given order using the arena a. The
// arena is reset. The logger may be nil.
func NewModel(a *arena.Arena, order int, log logrus.FieldLogger) (*Model, error) {
	if !(MinOrder <= order && order <= MaxOrder) {
		return nil, fmt.Errorf("ppm: order %d not in range [%d,%d]",
			order, MinOrder, MaxOrder)
	}
	if a == nil {
		return nil, errors.New("ppm: arena must not be nil")
	}
	m := &Model{
		a:        a,
		maxOrder: order,
		log:      log,
		stats:    make([]Stat, 0, 256),
		path:     make([]uint32, 0, MaxOrder+1),
	}
	m.table.Symbols = make([]byte, 0, 256)
	m.table.Cum = make([]uint32, 0, 257)
	m.reset()
	return m, nil
}

// reset clears the arena and creates an empty root context.
func (m *Model) reset() {
	m.a.Reset()
	root, err := m.newContext(0, 0)
	if err != nil {
		panic(fmt.Errorf("ppm: no space for root context: %w", err))
	}
	m.root = root
	m.maxCtx = root
	for i := range m.binProbs {
		for j := range m.binProbs[i] {
			m.binProbs[i][j] = rc.ProbInit
		}
	}
}

// Restart discards all statistics. The model behaves afterwards as a
// newly created one, except for the restart counter.
func (m *Model) Restart() {
	m.reset()
	m.restarts++
	if m.log != nil {
		m.log.WithFields(logrus.Fields{
			"order":    m.maxOrder,
			"budgetMB": m.a.BudgetMB(),
			"restarts": m.restarts,
		}).Debug("ppm: memory exhausted, model restarted")
	}
}

// Order returns the maximum order of the model.
func (m *Model) Order() int { return m.maxOrder }

// Restarts returns the number of restarts caused by memory exhaustion.
func (m *Model) Restarts() int { return m.restarts }

// MemoryUsed returns the number of arena bytes in use.
func (m *Model) MemoryUsed() int { return m.a.Used() }

// Encode codes sym, which must be a byte value or EOS, and updates the
// model.
func (m *Model) Encode(e *rc.Encoder, sym int) error {
	if !(0 <= sym && sym <= EOS) {
		panic(fmt.Errorf("ppm: symbol %d out of range", sym))
	}
	m.enc.e = e
	_, err := m.code(&m.enc, sym)
	return err
}

// Decode decodes the next symbol and updates the model. The result is a
// byte value or EOS.
func (m *Model) Decode(d *rc.Decoder) (sym int, err error) {
	m.dec.d = d
	return m.code(&m.dec, -1)
}

// code walks the contexts from the longest one along the suffix links
// until the symbol is found. The walk is the same for encoding and
// decoding. Only the symbolCoder differs.
func (m *Model) code(c symbolCoder, sym int) (int, error) {
	m.ex.Reset()
	m.path = m.path[:0]
	var found, fs uint32
	for ctx := m.maxCtx; ctx != 0; ctx = m.suffix(ctx) {
		n := m.numStats(ctx)
		if n == 1 && m.ex.Len() == 0 {
			s := m.state(ctx, 0)
			c0 := m.symbol(s)
			p := m.binProb(ctx, s)
			hit, err := c.codeBinary(p, sym == int(c0))
			if err != nil {
				return 0, err
			}
			if hit {
				found, fs, sym = ctx, s, int(c0)
				break
			}
			m.ex.Add(c0)
			m.path = append(m.path, ctx)
			continue
		}

		Estimate(m.loadStats(ctx), &m.ex, &m.table)
		if m.table.Len() == 0 {
			m.path = append(m.path, ctx)
			continue
		}
		i, err := c.codeTable(&m.table, sym)
		if err != nil {
			return 0, err
		}
		if i >= 0 {
			c0 := m.table.Symbols[i]
			found, fs, sym = ctx, m.findState(ctx, c0), int(c0)
			break
		}
		for _, c0 := range m.table.Symbols {
			m.ex.Add(c0)
		}
		m.path = append(m.path, ctx)
	}

	if found == 0 {
		var err error
		if sym, err = c.codeFlat(&m.ex, sym); err != nil {
			return 0, err
		}
		if sym == EOS {
			return EOS, nil
		}
	}

	if err := m.update(found, fs, byte(sym)); err != nil {
		if !errors.Is(err, arena.ErrOutOfMemory) {
			return 0, err
		}
		m.Restart()
	}
	return sym, nil
}

// binProb returns the probability for the single state s of ctx.
func (m *Model) binProb(ctx, s uint32) *rc.Prob {
	b := (m.freq(s) - 1) >> 2
	if b >= numFreqBuckets {
		b = numFreqBuckets - 1
	}
	return &m.binProbs[b][m.order(ctx)]
}

// update adds the coded symbol to the statistics. The contexts of the
// path receive the symbol in order of increasing length, so the suffix of
// every context already has a successor for the symbol.
func (m *Model) update(found, s uint32, sym byte) error {
	if found != 0 {
		m.increment(found, s)
	}
	for i := len(m.path) - 1; i >= 0; i-- {
		if err := m.addSymbol(m.path[i], sym); err != nil {
			return err
		}
	}

	top := m.maxCtx
	if m.order(top) == m.maxOrder {
		top = m.suffix(top)
	}
	s = m.findState(top, sym)
	if s == 0 {
		panic(fmt.Errorf("ppm: coded symbol %#02x missing in context",
			sym))
	}
	m.maxCtx = m.successor(s)
	return nil
}
