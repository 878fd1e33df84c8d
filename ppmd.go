// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package ppmd

import (
	"bytes"
	"io"
)

// Compress compresses data with the given order and memory budget in
// megabytes.
func Compress(data []byte, order, memoryMB int) ([]byte, error) {
	return CompressConfig(data, WriterConfig{Order: order, MemoryMB: memoryMB})
}

// CompressConfig compresses data using the configuration.
func CompressConfig(data []byte, cfg WriterConfig) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data)/2 + 64)
	w, err := NewWriterConfig(&buf, cfg)
	if err != nil {
		return nil, err
	}
	if _, err = w.Write(data); err != nil {
		w.Discard()
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress decompresses a complete stream. It returns the data and the
// name stored in the header.
func Decompress(data []byte) (out []byte, name string, err error) {
	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, r); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), r.Name(), nil
}
