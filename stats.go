// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package ppmd

// Stats reports the progress of a writer or reader. In counts the bytes
// consumed and Out the bytes produced.
type Stats struct {
	In  int64
	Out int64
	// MemoryUsed is the number of bytes of the arena used by the model.
	MemoryUsed int
	// Restarts counts the model restarts caused by memory exhaustion.
	Restarts int
}

// Memory returns the used model memory in megabytes (2^20 bytes) and
// tenths of a megabyte. The tenths are rounded. Since MemoryUsed counts
// bytes, the conversion shifts by 20 bits; programs counting in units of
// 4 bytes would shift by 18 for the same result.
func (s Stats) Memory() (mb, tenths int) {
	const shift = 20
	mb = s.MemoryUsed >> shift
	rem := s.MemoryUsed & (1<<shift - 1)
	tenths = (10*rem + 1<<(shift-1)) >> shift
	if tenths == 10 {
		mb++
		tenths = 0
	}
	return mb, tenths
}

// Ratio returns the space saving in percent for compression.
func (s Stats) Ratio() float64 {
	if s.In == 0 || s.Out == 0 {
		return 0
	}
	return 100 - 100*float64(s.Out)/float64(s.In)
}

// RatioUncompressed returns the space saving in percent for decompression,
// where In is the compressed size.
func (s Stats) RatioUncompressed() float64 {
	if s.In == 0 || s.Out == 0 {
		return 0
	}
	return 100 - 100*float64(s.In)/float64(s.Out)
}
