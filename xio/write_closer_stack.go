// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Package xio provides tools to handle I/O operations. The
// [WriteCloserStack] combines a file and the compressing writers on top of
// it into a single [io.WriteCloser] that can be closed or aborted as a
// whole.
package xio

import (
	"errors"
	"io"
)

// Discarder is implemented by writers that can abandon their output
// without finishing it, for instance a ppmd.Writer.
type Discarder interface {
	Discard()
}

// WriteCloserStack allows to support multiple WriteClosers to be handled as
// single WriteCloser.
type WriteCloserStack struct {
	Stack []io.WriteCloser
}

// NewWriteCloserStack creates a new WriteCloserStack. It will have an an empty
// stack.
func NewWriteCloserStack() *WriteCloserStack {
	return &WriteCloserStack{}
}

// Write writes data to the top WriteCloser in the stack. If the stack is empty
// Write will always succeed.
func (w *WriteCloserStack) Write(p []byte) (n int, err error) {
	k := len(w.Stack)
	if k == 0 {
		return len(p), nil
	}
	return w.Stack[k-1].Write(p)
}

// Close closes all writers on the stack from top to bottom and combines the
// errors. It will clear the stack.
func (w *WriteCloserStack) Close() error {
	var errs []error
	for k := len(w.Stack) - 1; k >= 0; k-- {
		errs = append(errs, w.Stack[k].Close())
	}
	w.Stack = nil
	return errors.Join(errs...)
}

// Abort discards the writers implementing [Discarder] and closes all
// others. No end-of-stream data is written. It will clear the stack.
func (w *WriteCloserStack) Abort() error {
	var errs []error
	for k := len(w.Stack) - 1; k >= 0; k-- {
		if d, ok := w.Stack[k].(Discarder); ok {
			d.Discard()
			continue
		}
		errs = append(errs, w.Stack[k].Close())
	}
	w.Stack = nil
	return errors.Join(errs...)
}

// Push adds a new WriteCloser to the top of the stack. It panics if the
// WriteCloser is nil.
func (w *WriteCloserStack) Push(wc io.WriteCloser) {
	if wc == nil {
		panic("cannot push nil WriteCloser onto stack")
	}
	w.Stack = append(w.Stack, wc)
}
