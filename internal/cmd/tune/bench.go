// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"sync"
	"testing"

	"github.com/ulikunitz/zdata"

	"github.com/ulikunitz/ppmd"
	"github.com/ulikunitz/ppmd/internal/corpus"
)

var (
	_silesiaFiles []corpus.File
	silesiaOnce   sync.Once
)

func silesiaFiles() []corpus.File {
	silesiaOnce.Do(func() {
		var err error
		_silesiaFiles, err = corpus.Files(zdata.Silesia)
		if err != nil {
			panic(fmt.Errorf("silesiaFiles() error %w", err))
		}
	})
	return _silesiaFiles
}

func writerBenchmark(files []corpus.File, cfg ppmd.WriterConfig) func(b *testing.B) {
	return func(b *testing.B) {
		size := corpus.Size(files)
		b.SetBytes(size)
		var (
			err error
			r   corpus.Result
		)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			r, err = corpus.Compress(files, cfg)
			if err != nil {
				b.Fatalf("corpus.Compress error %s", err)
			}
		}
		b.StopTimer()
		b.ReportMetric(float64(r.CompressedSize)/float64(size), "c/u")
		b.ReportMetric(float64(r.Restarts), "restarts")
	}
}
