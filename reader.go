// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package ppmd

import (
	"bufio"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ulikunitz/ppmd/arena"
	"github.com/ulikunitz/ppmd/ppm"
	"github.com/ulikunitz/ppmd/rc"
)

// countReader counts the bytes read from a buffered reader.
type countReader struct {
	r *bufio.Reader
	n int64
}

func (cr *countReader) Read(p []byte) (n int, err error) {
	n, err = cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}

func (cr *countReader) ReadByte() (c byte, err error) {
	c, err = cr.r.ReadByte()
	if err == nil {
		cr.n++
	}
	return c, err
}

// Reader decompresses a stream created by [Writer].
type Reader struct {
	cfg ReaderConfig
	h   Header
	a   *arena.Arena
	cr  countReader
	d   *rc.Decoder
	m   *ppm.Model
	n   int64
	err error
}

// NewReader creates a reader for the stream. The header is read
// immediately.
func NewReader(r io.Reader) (*Reader, error) {
	return NewReaderConfig(r, ReaderConfig{})
}

// NewReaderConfig creates a reader using the given configuration.
func NewReaderConfig(r io.Reader, cfg ReaderConfig) (*Reader, error) {
	if r == nil {
		return nil, &Error{Kind: ConfigError, Op: "new reader",
			Err: errors.New("reader must not be nil")}
	}
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	zr := &Reader{cfg: cfg, cr: countReader{r: bufio.NewReader(r)}}
	var err error
	if zr.h, err = readHeader(&zr.cr); err != nil {
		return nil, err
	}
	if zr.a, err = newArena(cfg.Arena, zr.h.MemoryMB); err != nil {
		return nil, err
	}
	if zr.m, err = ppm.NewModel(zr.a, zr.h.Order, cfg.Logger); err != nil {
		return nil, &Error{Kind: ConfigError, Op: "new reader", Err: err}
	}
	zr.d = rc.NewDecoder(&zr.cr)
	if err = zr.d.Init(); err != nil {
		return nil, decodeError("read", err)
	}
	return zr, nil
}

// Header returns the stream header.
func (r *Reader) Header() Header { return r.h }

// Name returns the file name stored in the header.
func (r *Reader) Name() string { return r.h.Name }

// Read decompresses data into p. It returns io.EOF after the end of the
// stream has been decoded.
func (r *Reader) Read(p []byte) (n int, err error) {
	if r.err != nil {
		return 0, r.err
	}
	for n < len(p) {
		sym, err := r.m.Decode(r.d)
		if err != nil {
			r.err = decodeError("read", err)
			break
		}
		if sym == ppm.EOS {
			r.err = io.EOF
			r.logSummary()
			break
		}
		p[n] = byte(sym)
		n++
	}
	r.n += int64(n)
	if n > 0 {
		return n, nil
	}
	return 0, r.err
}

func (r *Reader) logSummary() {
	if r.cfg.Logger == nil {
		return
	}
	s := r.Stats()
	r.cfg.Logger.WithFields(logrus.Fields{
		"in":       s.In,
		"out":      s.Out,
		"memory":   s.MemoryUsed,
		"restarts": s.Restarts,
	}).Debug("ppmd: decompression finished")
}

// Discard abandons the decompression. The arena is reset and the reader
// can no longer be used.
func (r *Reader) Discard() {
	r.a.Reset()
	r.err = &Error{Kind: IOError, Op: "discard", Err: errDiscarded}
}

// Stats returns the statistics of the decompression. In counts the
// compressed bytes including the header.
func (r *Reader) Stats() Stats {
	return Stats{
		In:         r.cr.n,
		Out:        r.n,
		MemoryUsed: r.a.Used(),
		Restarts:   r.m.Restarts(),
	}
}
