// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package xio_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/ulikunitz/ppmd"
	"github.com/ulikunitz/ppmd/xio"
)

func ExampleWriteCloserStack() {
	wcStack := xio.NewWriteCloserStack()
	defer wcStack.Close()

	f, err := os.CreateTemp("", "example_write_closer_stack-*.ppm")
	if err != nil {
		panic(err)
	}
	defer os.Remove(f.Name())
	wcStack.Push(f)

	z, err := ppmd.NewWriter(f)
	if err != nil {
		panic(err)
	}
	wcStack.Push(z)

	_, err = io.WriteString(wcStack, "The fox jumps over the lazy dog.\n")
	if err != nil {
		panic(err)
	}

	err = wcStack.Close()
	if err != nil {
		panic(err)
	}

	// Output:
}

type closeRecorder struct {
	bytes.Buffer
	name   string
	events *[]string
	err    error
}

func (c *closeRecorder) Close() error {
	*c.events = append(*c.events, "close "+c.name)
	return c.err
}

type discardRecorder struct {
	closeRecorder
}

func (d *discardRecorder) Discard() {
	*d.events = append(*d.events, "discard "+d.name)
}

func TestWriteCloserStack(t *testing.T) {
	var events []string
	errBottom := errors.New("bottom failed")
	bottom := &closeRecorder{name: "bottom", events: &events, err: errBottom}
	top := &discardRecorder{closeRecorder{name: "top", events: &events}}

	s := xio.NewWriteCloserStack()
	s.Push(bottom)
	s.Push(top)
	if _, err := io.WriteString(s, "data"); err != nil {
		t.Fatalf("WriteString error %s", err)
	}
	if top.String() != "data" || bottom.Len() != 0 {
		t.Fatalf("data not written to top of stack")
	}
	if err := s.Close(); !errors.Is(err, errBottom) {
		t.Fatalf("s.Close() error %v; want %v", err, errBottom)
	}
	want := []string{"close top", "close bottom"}
	if len(events) != 2 || events[0] != want[0] || events[1] != want[1] {
		t.Fatalf("events %q; want %q", events, want)
	}

	events = events[:0]
	bottom.err = nil
	s.Push(bottom)
	s.Push(top)
	if err := s.Abort(); err != nil {
		t.Fatalf("s.Abort() error %s", err)
	}
	want = []string{"discard top", "close bottom"}
	if len(events) != 2 || events[0] != want[0] || events[1] != want[1] {
		t.Fatalf("events %q; want %q", events, want)
	}
	if len(s.Stack) != 0 {
		t.Fatalf("stack not cleared")
	}
}
