// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"testing"

	"github.com/ulikunitz/ppmd"
)

func TestSlot(t *testing.T) {
	slots := []float64{0.30, 0.28, 0.26}
	tests := []struct {
		ratio float64
		i     int
		ok    bool
	}{
		{0.35, -1, false},
		{0.29, 0, true},
		{0.27, 1, true},
		{0.20, 2, true},
	}
	for _, tc := range tests {
		i, ok := slot(slots, tc.ratio)
		if i != tc.i || ok != tc.ok {
			t.Errorf("slot(%.2f) = %d, %t; want %d, %t",
				tc.ratio, i, ok, tc.i, tc.ok)
		}
	}
}

func TestWorse(t *testing.T) {
	a := ppmd.WriterConfig{Order: 4, MemoryMB: 2}
	b := ppmd.WriterConfig{Order: 4, MemoryMB: 8}
	c := ppmd.WriterConfig{Order: 5, MemoryMB: 1}
	if !worse(&a, &b) {
		t.Errorf("smaller budget at same order not worse")
	}
	if worse(&b, &a) {
		t.Errorf("larger budget reported as worse")
	}
	if worse(&c, &b) {
		t.Errorf("different orders compared")
	}
}

func TestAppendConfigs(t *testing.T) {
	configs := appendConfigs(nil)
	if len(configs) != 15*9 {
		t.Fatalf("got %d configs; want %d", len(configs), 15*9)
	}
	for _, cfg := range configs {
		if err := cfg.Verify(); err != nil {
			t.Fatalf("cfg.Verify() error %s", err)
		}
	}
}
