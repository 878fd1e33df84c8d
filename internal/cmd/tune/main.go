// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

// Command tune benchmarks model orders and memory budgets on the Silesia
// corpus and selects the fastest configuration for every compression
// ratio slot. The result is used for the presets of the ppmd package.
package main

import (
	"fmt"
	"log"
	"math"
	"sort"
	"testing"

	"github.com/kr/pretty"

	"github.com/ulikunitz/ppmd"
	"github.com/ulikunitz/ppmd/internal/corpus"
)

type preset struct {
	present bool
	cfg     ppmd.WriterConfig
	result  testing.BenchmarkResult
}

// mbPerSec returns the Megabytes (1 000 000 bytes) per seconds that are
// processed.
func mbPerSec(r testing.BenchmarkResult) float64 {
	if v, ok := r.Extra["MB/s"]; ok {
		return v
	}
	if r.Bytes <= 0 || r.T <= 0 || r.N <= 0 {
		return 0
	}
	return (float64(r.Bytes) * float64(r.N) / 1e6) / r.T.Seconds()
}

func ratio(r testing.BenchmarkResult) float64 {
	if x, ok := r.Extra["c/u"]; ok {
		return x
	}
	return math.NaN()
}

// Returns the slot index the ratio qualifies for. If no slot can be found ok
// will be false.
func slot(slots []float64, ratio float64) (i int, ok bool) {
	for i, r := range slots {
		if ratio > r {
			return i - 1, i > 0
		}
	}
	return len(slots) - 1, true
}

func disable(cfg *ppmd.WriterConfig) { cfg.Order = -1 }

func disabled(cfg *ppmd.WriterConfig) bool { return cfg.Order < 0 }

// worse reports whether a cannot compress better than b, which failed to
// reach a slot. A smaller budget at the same order never helps.
func worse(a, b *ppmd.WriterConfig) bool {
	if a == nil || b == nil || a == b {
		return false
	}
	return a.Order == b.Order && a.MemoryMB <= b.MemoryMB
}

func findPresets(files []corpus.File, slots []float64, configs []ppmd.WriterConfig) []preset {
	if len(slots) == 0 {
		log.Fatalf("no slots defined")
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i] > slots[j]
	})
	fmt.Printf("slots %.3f\n", slots)

	presets := make([]preset, len(slots))

	i := 0
	n := len(configs)
	for len(configs) > 0 {
		k := len(configs) - 1
		cfg := configs[k]
		configs = configs[:k]
		if disabled(&cfg) {
			continue
		}
		n--

		i++
		result := testing.Benchmark(writerBenchmark(files, cfg))
		fmt.Printf("%d-%d %s\n", i, n, result)
		si, ok := slot(slots, ratio(result))
		if !ok {
			for i := range configs {
				p := &configs[i]
				if disabled(p) {
					continue
				}
				if worse(p, &cfg) {
					disable(p)
					n--
				}
			}
			continue
		}
		v := mbPerSec(result)
		p := presets[si]
		if p.present && v <= mbPerSec(p.result) {
			fmt.Printf("slot %d - not faster\n", si+1)
			continue
		}
		presets[si] = preset{
			present: true,
			cfg:     cfg,
			result:  result,
		}
		fmt.Printf("slot %d - update\n", si+1)
		pretty.Println(cfg)
	}
	return presets
}

func printPresets(presets []preset) {
	fmt.Printf("\n\n### Result ###\n\n")

	for si, p := range presets {
		if si > 0 {
			fmt.Printf("\n")
		}
		if !p.present {
			fmt.Printf("slot %d - not present\n", si+1)
			continue
		}
		fmt.Printf("slot %d - \t%.3f c/u\t%.2f MB/s\t%.0f restarts\n",
			si+1, ratio(p.result), mbPerSec(p.result),
			p.result.Extra["restarts"])
		pretty.Println(p.cfg)
	}
}

// appendConfigs adds the grid of orders and budgets. The budgets are
// ordered ascending, so the larger budgets are tried first.
func appendConfigs(x []ppmd.WriterConfig) (y []ppmd.WriterConfig) {
	y = x
	for order := 2; order <= 16; order++ {
		for memExp := 0; memExp <= 8; memExp++ {
			cfg := ppmd.WriterConfig{
				Order:    order,
				MemoryMB: 1 << memExp,
			}
			cfg.ApplyDefaults()
			y = append(y, cfg)
		}
	}
	return y
}

func main() {
	testing.Init()
	configs := appendConfigs(nil)

	slots := []float64{0.36, 0.34, 0.32, 0.30,
		0.28, 0.27, 0.26, 0.25, 0.24}
	printPresets(findPresets(silesiaFiles(), slots, configs))
}
