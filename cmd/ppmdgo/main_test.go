// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ulikunitz/ppmd"
	"github.com/ulikunitz/ppmd/internal/xlog"
)

func TestFilterArg(t *testing.T) {
	tests := []struct {
		arg    string
		out    string
		preset Preset
	}{
		{"-9", "-", 9},
		{"-k3", "-k", 3},
		{"-o4", "-o4", defaultPreset},
		{"-2m16", "-m16", 2},
		{"--order=3", "--order=3", defaultPreset},
		{"file9", "file9", defaultPreset},
	}
	for _, tc := range tests {
		p := defaultPreset
		out := p.filterArg(tc.arg)
		if out != tc.out || p != tc.preset {
			t.Errorf("filterArg(%q) = %q, preset %d; want %q, %d",
				tc.arg, out, p, tc.out, tc.preset)
		}
	}
}

func TestFilter(t *testing.T) {
	p := defaultPreset
	args := p.filter([]string{"ppmdgo", "-1", "-", "-dk", "--", "-5"})
	want := []string{"ppmdgo", "-", "-dk", "--", "-5"}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("filter returned %q; want %q", args, want)
	}
	if p != 1 {
		t.Fatalf("preset %d; want 1", p)
	}
}

func TestWriterConfig(t *testing.T) {
	xlog.SetOutput(io.Discard)
	defer xlog.SetOutput(os.Stderr)
	tests := []struct {
		preset        Preset
		order, memory int
		want          ppmd.WriterConfig
	}{
		{6, 0, 0, ppmd.WriterConfig{Order: 6, MemoryMB: 16}},
		{1, 0, 0, ppmd.WriterConfig{Order: 2, MemoryMB: 1}},
		{0, 0, 0, ppmd.WriterConfig{Order: 2, MemoryMB: 1}},
		{6, 1, 300, ppmd.WriterConfig{Order: 2, MemoryMB: 256}},
		{6, 20, -4, ppmd.WriterConfig{Order: 16, MemoryMB: 1}},
		{9, 5, 8, ppmd.WriterConfig{Order: 5, MemoryMB: 8}},
	}
	for _, tc := range tests {
		cfg := writerConfig(tc.preset, tc.order, tc.memory)
		if cfg.Order != tc.want.Order || cfg.MemoryMB != tc.want.MemoryMB {
			t.Errorf("writerConfig(%d, %d, %d) = %d/%d; want %d/%d",
				tc.preset, tc.order, tc.memory,
				cfg.Order, cfg.MemoryMB,
				tc.want.Order, tc.want.MemoryMB)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	out, tmp, err := ppmdPacker{}.outputPaths("dir/a.txt")
	if err != nil || out != "dir/a.txt.ppm" || tmp != "dir/a.txt.ppm.pack" {
		t.Fatalf("packer paths %q, %q, %v", out, tmp, err)
	}
	if _, _, err = (ppmdPacker{}).outputPaths("a.ppm"); err == nil {
		t.Fatalf("packer accepted .ppm file")
	}
	out, tmp, err = ppmdUnpacker{}.outputPaths("dir/a.txt.ppm")
	if err != nil || out != "dir/a.txt" || tmp != "dir/a.txt.unpack" {
		t.Fatalf("unpacker paths %q, %q, %v", out, tmp, err)
	}
	for _, p := range []string{"a.txt", "dir/.ppm"} {
		if _, _, err = (ppmdUnpacker{}).outputPaths(p); err == nil {
			t.Errorf("unpacker accepted %q", p)
		}
	}
}

func TestRestoredPath(t *testing.T) {
	tests := []struct{ path, name, want string }{
		{"dir/x.ppm", "orig.txt", filepath.Join("dir", "orig.txt")},
		{"x.ppm", "../../etc/passwd", "passwd"},
		{"x.ppm", "", ""},
	}
	for _, tc := range tests {
		if got := restoredPath(tc.path, tc.name); got != tc.want {
			t.Errorf("restoredPath(%q, %q) = %q; want %q",
				tc.path, tc.name, got, tc.want)
		}
	}
}

func TestProcessFile(t *testing.T) {
	xlog.SetOutput(io.Discard)
	defer xlog.SetOutput(os.Stderr)
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	data := bytes.Repeat([]byte("to be or not to be, that is the question\n"), 100)
	if err := os.WriteFile(path, data, 0666); err != nil {
		t.Fatalf("os.WriteFile error %s", err)
	}

	opts := &options{cfg: ppmd.WriterConfig{Order: 4, MemoryMB: 1}}
	if !processFile(path, opts) {
		t.Fatalf("compression of %s failed", path)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("input file not removed")
	}
	cpath := path + ppmSuffix
	c, err := os.ReadFile(cpath)
	if err != nil {
		t.Fatalf("os.ReadFile error %s", err)
	}
	if len(c) >= len(data) {
		t.Fatalf("compressed size %d not smaller than %d",
			len(c), len(data))
	}

	// rename the compressed file and restore the name from the header
	npath := filepath.Join(dir, "other.ppm")
	if err = os.Rename(cpath, npath); err != nil {
		t.Fatalf("os.Rename error %s", err)
	}
	opts = &options{decompress: true, name: true, keep: true}
	if !processFile(npath, opts) {
		t.Fatalf("decompression of %s failed", npath)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("os.ReadFile error %s", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("decompressed data differs")
	}
	if _, err = os.Stat(npath); err != nil {
		t.Fatalf("compressed file not kept: %s", err)
	}

	// the output exists now
	if processFile(npath, opts) {
		t.Fatalf("existing output file overwritten without -f")
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.unpack"))
	if err != nil || len(matches) != 0 {
		t.Fatalf("temporary files left: %v %v", matches, err)
	}
}
