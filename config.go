// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package ppmd

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ulikunitz/ppmd/arena"
)

// Default parameters for the writer.
const (
	DefaultOrder    = 6
	DefaultMemoryMB = 16
)

// WriterConfig defines the parameters of a compressed stream.
type WriterConfig struct {
	// Order is the maximum model order in the range [2,16]. (default:
	// 6)
	Order int
	// MemoryMB is the memory budget for the model in megabytes in the
	// range [1,256]. The decoder requires the same amount of memory.
	// (default: 16 or the budget of Arena)
	MemoryMB int
	// Name is stored in the header. It is usually the base name of the
	// compressed file.
	Name string
	// Arena will be used for the model if provided. The budget must
	// match MemoryMB. It must not be shared by active writers or
	// readers.
	Arena *arena.Arena
	// Logger receives debug messages about model restarts and the
	// session summary. It may be nil.
	Logger logrus.FieldLogger
}

// ApplyDefaults replaces zero values by the default values.
func (c *WriterConfig) ApplyDefaults() {
	if c.Order == 0 {
		c.Order = DefaultOrder
	}
	if c.MemoryMB == 0 {
		if c.Arena != nil {
			c.MemoryMB = c.Arena.BudgetMB()
		} else {
			c.MemoryMB = DefaultMemoryMB
		}
	}
}

// Verify checks the configuration for errors. Zero values will be
// replaced by default values.
func (c *WriterConfig) Verify() error {
	if c == nil {
		return &Error{Kind: ConfigError, Op: "verify",
			Err: errors.New("writer configuration is nil")}
	}
	c.ApplyDefaults()
	h := Header{Order: c.Order, MemoryMB: c.MemoryMB, Name: c.Name}
	if err := h.verify(); err != nil {
		return &Error{Kind: ConfigError, Op: "verify", Err: err}
	}
	if c.Arena != nil && c.Arena.BudgetMB() != c.MemoryMB {
		return &Error{Kind: ConfigError, Op: "verify",
			Err: fmt.Errorf("arena budget %d MB differs from %d MB",
				c.Arena.BudgetMB(), c.MemoryMB)}
	}
	return nil
}

// ReaderConfig defines optional parameters for the reader.
type ReaderConfig struct {
	// Arena is used if its budget matches the budget stored in the
	// stream header.
	Arena *arena.Arena
	// Logger receives debug messages. It may be nil.
	Logger logrus.FieldLogger
}

// ApplyDefaults sets the defaults for the reader. There are no parameters
// requiring defaults currently.
func (c *ReaderConfig) ApplyDefaults() {}

// Verify checks the reader configuration.
func (c *ReaderConfig) Verify() error {
	if c == nil {
		return &Error{Kind: ConfigError, Op: "verify",
			Err: errors.New("reader configuration is nil")}
	}
	c.ApplyDefaults()
	return nil
}

// newArena returns the arena for the budget. The provided arena is reused
// if it has the right size.
func newArena(a *arena.Arena, budgetMB int) (*arena.Arena, error) {
	if a != nil && a.BudgetMB() == budgetMB {
		return a, nil
	}
	a, err := arena.New(budgetMB)
	if err != nil {
		return nil, &Error{Kind: AllocationError, Op: "allocate", Err: err}
	}
	return a, nil
}

// Preset returns a WriterConfig with preset parameters. Supported presets
// are ranging from 1 to 9 with increasing order and memory.
func Preset(n int) WriterConfig {
	if !(1 <= n && n <= 9) {
		panic(errors.New("ppmd: preset must be in range [1..9]"))
	}
	return presets[n-1]
}

// presets contains the order and memory pairs.
var presets = [...]WriterConfig{
	{Order: 2, MemoryMB: 1},
	{Order: 3, MemoryMB: 2},
	{Order: 4, MemoryMB: 4},
	{Order: 4, MemoryMB: 8},
	{Order: 5, MemoryMB: 16},
	{Order: DefaultOrder, MemoryMB: DefaultMemoryMB},
	{Order: 8, MemoryMB: 32},
	{Order: 10, MemoryMB: 64},
	{Order: 16, MemoryMB: 256},
}
