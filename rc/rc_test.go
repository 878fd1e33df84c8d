// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package rc

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"testing"
)

var testStrings = []string{
	"S",
	"HalloBallo",
	"funny",
	"Die Nummer Eins der Welt sind wir!",
}

// freqTable is a static cumulative frequency table over bytes.
type freqTable struct {
	cum   [257]uint32
	total uint32
}

func newFreqTable(freq func(c int) uint32) *freqTable {
	t := new(freqTable)
	for c := 0; c < 256; c++ {
		t.cum[c+1] = t.cum[c] + freq(c)
	}
	t.total = t.cum[256]
	return t
}

func (t *freqTable) symbol(count uint32) int {
	lo, hi := 0, 256
	for lo+1 < hi {
		m := (lo + hi) / 2
		if t.cum[m] <= count {
			lo = m
		} else {
			hi = m
		}
	}
	return lo
}

func encodeFreqs(t *testing.T, ft *freqTable, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	for _, c := range data {
		start, end := ft.cum[c], ft.cum[int(c)+1]
		if err := e.EncodeFreq(start, end-start, ft.total); err != nil {
			t.Fatalf("e.EncodeFreq: %s", err)
		}
	}
	if err := e.Flush(); err != nil {
		t.Fatalf("e.Flush: %s", err)
	}
	if e.Len() != int64(buf.Len()) {
		t.Fatalf("e.Len() = %d; want %d", e.Len(), buf.Len())
	}
	return buf.Bytes()
}

func decodeFreqs(t *testing.T, ft *freqTable, p []byte, n int) []byte {
	t.Helper()
	d := NewDecoder(bytes.NewReader(p))
	if err := d.Init(); err != nil {
		t.Fatalf("d.Init: %s", err)
	}
	out := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		count, err := d.Threshold(ft.total)
		if err != nil {
			t.Fatalf("d.Threshold: %s", err)
		}
		c := ft.symbol(count)
		start, end := ft.cum[c], ft.cum[c+1]
		if err = d.DecodeFreq(start, end-start); err != nil {
			t.Fatalf("d.DecodeFreq: %s", err)
		}
		out = append(out, byte(c))
	}
	return out
}

func TestFrequencyCoding(t *testing.T) {
	tables := map[string]*freqTable{
		"uniform": newFreqTable(func(c int) uint32 { return 1 }),
		"skewed": newFreqTable(func(c int) uint32 {
			if c == 'a' {
				return 60000
			}
			return 1
		}),
		"letters": newFreqTable(func(c int) uint32 {
			if 'a' <= c && c <= 'z' || c == ' ' {
				return 100
			}
			return 1
		}),
	}
	for name, ft := range tables {
		for _, s := range testStrings {
			p := encodeFreqs(t, ft, []byte(s))
			if p[0] != 0 {
				t.Fatalf("%s: first byte %#02x; want 0", name, p[0])
			}
			out := decodeFreqs(t, ft, p, len(s))
			if string(out) != s {
				t.Errorf("%s: got %q; want %q", name, out, s)
			}
		}
	}
}

func TestSkewedCompresses(t *testing.T) {
	ft := newFreqTable(func(c int) uint32 {
		if c == 'a' {
			return 65000
		}
		return 1
	})
	data := bytes.Repeat([]byte{'a'}, 100000)
	p := encodeFreqs(t, ft, data)
	if len(p) > 200 {
		t.Fatalf("%d bytes for a highly probable symbol", len(p))
	}
	out := decodeFreqs(t, ft, p, len(data))
	if !bytes.Equal(out, data) {
		t.Fatalf("decoded data differs")
	}
}

// TestCarryPropagation drives low into many 0xff cache bytes by coding the
// last interval of large totals.
func TestCarryPropagation(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	const total = MaxTotal
	r := rand.New(rand.NewSource(1))
	starts := make([]uint32, 5000)
	for i := range starts {
		if r.Intn(4) == 0 {
			starts[i] = uint32(r.Intn(total))
		} else {
			starts[i] = total - 1
		}
		if err := e.EncodeFreq(starts[i], 1, total); err != nil {
			t.Fatalf("e.EncodeFreq: %s", err)
		}
	}
	if err := e.Flush(); err != nil {
		t.Fatalf("e.Flush: %s", err)
	}
	d := NewDecoder(&buf)
	if err := d.Init(); err != nil {
		t.Fatalf("d.Init: %s", err)
	}
	for i, s := range starts {
		c, err := d.Threshold(total)
		if err != nil {
			t.Fatalf("d.Threshold: %s", err)
		}
		if c != s {
			t.Fatalf("value %d: got %d; want %d", i, c, s)
		}
		if err = d.DecodeFreq(c, 1); err != nil {
			t.Fatalf("d.DecodeFreq: %s", err)
		}
	}
}

func TestMixedCoding(t *testing.T) {
	ft := newFreqTable(func(c int) uint32 { return uint32(c%7 + 1) })
	r := rand.New(rand.NewSource(2))
	data := make([]byte, 2000)
	r.Read(data)

	var buf bytes.Buffer
	e := NewEncoder(&buf)
	var pe [2]Prob
	pe[0], pe[1] = ProbInit, ProbInit
	for _, c := range data {
		b := Bit(c >> 7)
		if err := e.Encode(b, &pe[c&1]); err != nil {
			t.Fatalf("e.Encode: %s", err)
		}
		start, end := ft.cum[c], ft.cum[int(c)+1]
		if err := e.EncodeFreq(start, end-start, ft.total); err != nil {
			t.Fatalf("e.EncodeFreq: %s", err)
		}
	}
	if err := e.Flush(); err != nil {
		t.Fatalf("e.Flush: %s", err)
	}

	d := NewDecoder(&buf)
	if err := d.Init(); err != nil {
		t.Fatalf("d.Init: %s", err)
	}
	var pd [2]Prob
	pd[0], pd[1] = ProbInit, ProbInit
	for i, c := range data {
		b, err := d.Decode(&pd[c&1])
		if err != nil {
			t.Fatalf("d.Decode: %s", err)
		}
		if b != Bit(c>>7) {
			t.Fatalf("bit %d: got %d; want %d", i, b, c>>7)
		}
		count, err := d.Threshold(ft.total)
		if err != nil {
			t.Fatalf("d.Threshold: %s", err)
		}
		x := ft.symbol(count)
		if byte(x) != c {
			t.Fatalf("byte %d: got %#02x; want %#02x", i, x, c)
		}
		start, end := ft.cum[x], ft.cum[x+1]
		if err = d.DecodeFreq(start, end-start); err != nil {
			t.Fatalf("d.DecodeFreq: %s", err)
		}
	}
	if pe != pd {
		t.Fatalf("probabilities diverged: %v != %v", pe, pd)
	}
}

func TestDecoderInitErrors(t *testing.T) {
	d := NewDecoder(bytes.NewReader([]byte{1, 0, 0, 0, 0}))
	if err := d.Init(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("d.Init with non-zero first byte: %v; want ErrCorrupt",
			err)
	}
	d = NewDecoder(bytes.NewReader([]byte{0, 0}))
	if err := d.Init(); err != io.ErrUnexpectedEOF {
		t.Fatalf("d.Init on truncated input: %v; want %v", err,
			io.ErrUnexpectedEOF)
	}
}

func TestTruncatedPayload(t *testing.T) {
	ft := newFreqTable(func(c int) uint32 { return 1 })
	s := "Die Nummer Eins der Welt sind wir!"
	p := encodeFreqs(t, ft, []byte(s))
	d := NewDecoder(bytes.NewReader(p[:6]))
	if err := d.Init(); err != nil {
		t.Fatalf("d.Init: %s", err)
	}
	var err error
	for i := 0; i < len(s) && err == nil; i++ {
		var count uint32
		count, err = d.Threshold(ft.total)
		if err != nil {
			break
		}
		err = d.DecodeFreq(count, 1)
	}
	if err != io.ErrUnexpectedEOF {
		t.Fatalf("decoding truncated payload: %v; want %v", err,
			io.ErrUnexpectedEOF)
	}
}
