// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package ppmd

import (
	"errors"
	"io"

	"github.com/ulikunitz/ppmd/arena"
	"github.com/ulikunitz/ppmd/rc"
)

// Kind classifies the errors returned by the package. A Kind is an error
// itself, so errors.Is(err, FormatError) checks the kind of err.
type Kind int

// Error kinds
const (
	// ConfigError reports a model order, memory budget or name outside
	// of the supported ranges. It is also returned for stream headers
	// storing such parameters.
	ConfigError Kind = iota + 1
	// IOError reports a failure of the underlying reader or writer.
	IOError
	// FormatError reports a malformed or truncated stream.
	FormatError
	// AllocationError reports a failure to reserve the memory pool.
	AllocationError
)

var kindStrings = map[Kind]string{
	ConfigError:     "configuration error",
	IOError:         "i/o error",
	FormatError:     "format error",
	AllocationError: "allocation error",
}

func (k Kind) String() string {
	s, ok := kindStrings[k]
	if !ok {
		return "unknown error"
	}
	return s
}

func (k Kind) Error() string { return "ppmd: " + k.String() }

// Error is the error type returned by readers, writers and the
// functions of the package.
type Error struct {
	Kind Kind
	// Op describes the operation that failed.
	Op  string
	Err error
}

func (e *Error) Error() string {
	s := "ppmd: " + e.Op
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the kind of the error.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// KindOf returns the kind of err. It returns zero if err has not been
// produced by this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return 0
}

func newError(k Kind, op string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: k, Op: op, Err: err}
}

// decodeError classifies errors of the decoding process. Truncation and
// invalid coder states make the stream unusable.
func decodeError(op string, err error) error {
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, rc.ErrCorrupt):
		return newError(FormatError, op, err)
	case errors.Is(err, arena.ErrBudget):
		return newError(AllocationError, op, err)
	}
	return newError(IOError, op, err)
}
