// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Package corpus loads file corpora and measures the compression of
// ppmd configurations on them.
package corpus

import (
	"bytes"
	"io"
	"io/fs"

	"github.com/ulikunitz/ppmd"
)

// File is a file of a corpus with its complete content.
type File struct {
	Name string
	Data []byte
}

// Files reads all regular files of the corpus.
func Files(corpus fs.FS) (files []File, err error) {
	err = fs.WalkDir(corpus, ".",
		func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			data, err := fs.ReadFile(corpus, path)
			if err != nil {
				return err
			}
			files = append(files, File{Name: path, Data: data})
			return nil
		})
	return files, err
}

// Size returns the total size of the files.
func Size(files []File) int64 {
	n := int64(0)
	for _, f := range files {
		n += int64(len(f.Data))
	}
	return n
}

type countWriter struct {
	n int64
}

func (w *countWriter) Write(p []byte) (n int, err error) {
	n = len(p)
	w.n += int64(n)
	return n, nil
}

// Result describes the compression of a set of files.
type Result struct {
	CompressedSize int64
	Restarts       int
}

// Compress compresses every file separately and returns the sum of the
// compressed sizes and restarts. The configuration must not contain an
// arena; every file gets a fresh model.
func Compress(files []File, cfg ppmd.WriterConfig) (r Result, err error) {
	for _, f := range files {
		cw := &countWriter{}
		cfg.Name = f.Name
		w, err := ppmd.NewWriterConfig(cw, cfg)
		if err != nil {
			return r, err
		}
		if _, err = io.Copy(w, bytes.NewReader(f.Data)); err != nil {
			return r, err
		}
		if err = w.Close(); err != nil {
			return r, err
		}
		r.CompressedSize += cw.n
		r.Restarts += w.Stats().Restarts
	}
	return r, nil
}
