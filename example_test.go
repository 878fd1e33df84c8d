// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package ppmd_test

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ulikunitz/ppmd"
)

func Example() {
	const text = "The quick brown fox jumps over the lazy dog.\n"
	var buf bytes.Buffer
	w, err := ppmd.NewWriterConfig(&buf, ppmd.WriterConfig{
		Order:    4,
		MemoryMB: 2,
		Name:     "fox.txt",
	})
	if err != nil {
		log.Fatalf("ppmd.NewWriterConfig error %s", err)
	}
	if _, err = io.WriteString(w, text); err != nil {
		log.Fatalf("io.WriteString error %s", err)
	}
	if err = w.Close(); err != nil {
		log.Fatalf("w.Close() error %s", err)
	}

	r, err := ppmd.NewReader(&buf)
	if err != nil {
		log.Fatalf("ppmd.NewReader error %s", err)
	}
	fmt.Println(r.Name())
	if _, err = io.Copy(os.Stdout, r); err != nil {
		log.Fatalf("io.Copy error %s", err)
	}
	// Output:
	// fox.txt
	// The quick brown fox jumps over the lazy dog.
}
