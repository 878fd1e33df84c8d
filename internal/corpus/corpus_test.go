// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package corpus

import (
	"bytes"
	"io"
	"testing"
	"testing/fstest"

	"github.com/cespare/xxhash/v2"
	"github.com/ulikunitz/zdata"

	"github.com/ulikunitz/ppmd"
)

func TestFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a.txt":     {Data: []byte("alpha")},
		"dir/b.txt": {Data: []byte("beta beta")},
	}
	files, err := Files(fsys)
	if err != nil {
		t.Fatalf("Files error %s", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files; want 2", len(files))
	}
	if n := Size(files); n != 14 {
		t.Fatalf("Size(files) = %d; want 14", n)
	}
	r, err := Compress(files, ppmd.WriterConfig{Order: 2, MemoryMB: 1})
	if err != nil {
		t.Fatalf("Compress error %s", err)
	}
	if r.CompressedSize <= 0 {
		t.Fatalf("compressed size %d", r.CompressedSize)
	}
}

func TestSilesia(t *testing.T) {
	if testing.Short() {
		t.Skip("Silesia corpus skipped in short mode")
	}
	configs := []struct {
		name string
		cfg  ppmd.WriterConfig
	}{
		{"default", ppmd.WriterConfig{}},
		{"order-16-1MB", ppmd.WriterConfig{Order: 16, MemoryMB: 1}},
	}

	files, err := Files(zdata.Silesia)
	if err != nil {
		t.Fatalf("Files(zdata.Silesia) error %s", err)
	}

	for _, c := range configs {
		c := c
		for _, f := range files {
			f := f
			t.Run(c.name+":"+f.Name, func(t *testing.T) {
				hsum := xxhash.Sum64(f.Data)

				buf := new(bytes.Buffer)
				w, err := ppmd.NewWriterConfig(buf, c.cfg)
				if err != nil {
					t.Fatalf("ppmd.NewWriterConfig error %s",
						err)
				}
				_, err = io.Copy(w, bytes.NewReader(f.Data))
				if err != nil {
					t.Fatalf("%s: io.Copy compression error %s",
						f.Name, err)
				}
				if err = w.Close(); err != nil {
					t.Fatalf("%s: w.Close() error %s",
						f.Name, err)
				}

				h := xxhash.New()
				r, err := ppmd.NewReader(buf)
				if err != nil {
					t.Fatalf("%s: ppmd.NewReader error %s",
						f.Name, err)
				}
				if _, err = io.Copy(h, r); err != nil {
					t.Fatalf("%s: io.Copy decompression error %s",
						f.Name, err)
				}
				if gsum := h.Sum64(); gsum != hsum {
					t.Errorf("%s: got %x; want %x",
						f.Name, gsum, hsum)
				}
			})
		}
	}
}
