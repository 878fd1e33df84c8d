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

var (
	errWriterClosed = errors.New("ppmd: writer is closed")
	errDiscarded    = errors.New("ppmd: session discarded")
)

// countWriter counts the bytes written to the underlying writer.
type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (n int, err error) {
	n, err = cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// Writer compresses the data written to it. Close must be called to
// write the end of the stream.
type Writer struct {
	cfg WriterConfig
	a   *arena.Arena
	cw  countWriter
	bw  *bufio.Writer
	e   *rc.Encoder
	m   *ppm.Model
	n   int64
	err error
}

// NewWriter creates a writer using the default parameters.
func NewWriter(w io.Writer) (*Writer, error) {
	return NewWriterConfig(w, WriterConfig{})
}

// NewWriterConfig creates a writer using the parameters of the
// configuration. The header is written immediately.
func NewWriterConfig(w io.Writer, cfg WriterConfig) (*Writer, error) {
	if w == nil {
		return nil, &Error{Kind: ConfigError, Op: "new writer",
			Err: errors.New("writer must not be nil")}
	}
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	h := Header{Order: cfg.Order, MemoryMB: cfg.MemoryMB, Name: cfg.Name}
	hdr, err := h.MarshalBinary()
	if err != nil {
		return nil, err
	}
	a, err := newArena(cfg.Arena, cfg.MemoryMB)
	if err != nil {
		return nil, err
	}
	m, err := ppm.NewModel(a, cfg.Order, cfg.Logger)
	if err != nil {
		return nil, &Error{Kind: ConfigError, Op: "new writer", Err: err}
	}
	zw := &Writer{
		cfg: cfg,
		a:   a,
		cw:  countWriter{w: w},
		m:   m,
	}
	zw.bw = bufio.NewWriter(&zw.cw)
	if _, err = zw.bw.Write(hdr); err != nil {
		return nil, &Error{Kind: IOError, Op: "write header", Err: err}
	}
	zw.e = rc.NewEncoder(zw.bw)
	return zw, nil
}

// Write compresses the bytes of p.
func (w *Writer) Write(p []byte) (n int, err error) {
	if w.err != nil {
		if w.err == errWriterClosed {
			return 0, &Error{Kind: IOError, Op: "write", Err: w.err}
		}
		return 0, w.err
	}
	for i, c := range p {
		if err = w.m.Encode(w.e, int(c)); err != nil {
			w.n += int64(i)
			w.err = &Error{Kind: IOError, Op: "write", Err: err}
			return i, w.err
		}
	}
	w.n += int64(len(p))
	return len(p), nil
}

// Close codes the end of the stream and flushes all buffered data. It
// doesn't close the underlying writer.
func (w *Writer) Close() error {
	if w.err != nil {
		if w.err == errWriterClosed {
			return nil
		}
		return w.err
	}
	if err := w.m.Encode(w.e, ppm.EOS); err != nil {
		w.err = &Error{Kind: IOError, Op: "close", Err: err}
		return w.err
	}
	if err := w.e.Flush(); err != nil {
		w.err = &Error{Kind: IOError, Op: "close", Err: err}
		return w.err
	}
	if err := w.bw.Flush(); err != nil {
		w.err = &Error{Kind: IOError, Op: "close", Err: err}
		return w.err
	}
	w.err = errWriterClosed
	if w.cfg.Logger != nil {
		s := w.Stats()
		w.cfg.Logger.WithFields(logrus.Fields{
			"in":       s.In,
			"out":      s.Out,
			"memory":   s.MemoryUsed,
			"restarts": s.Restarts,
		}).Debug("ppmd: compression finished")
	}
	return nil
}

// Discard abandons the compression. The arena is reset and the writer
// can no longer be used. Buffered output is not written.
func (w *Writer) Discard() {
	w.a.Reset()
	w.err = &Error{Kind: IOError, Op: "discard", Err: errDiscarded}
}

// Stats returns the statistics of the compression. The output count
// includes buffered bytes.
func (w *Writer) Stats() Stats {
	return Stats{
		In:         w.n,
		Out:        w.cw.n + int64(w.bw.Buffered()),
		MemoryUsed: w.a.Used(),
		Restarts:   w.m.Restarts(),
	}
}
