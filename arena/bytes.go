// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package arena

// putLE16 writes the uint16 value x into the slice p using little endian
// encoding. The slice p must have at least length two.
func putLE16(p []byte, x uint16) {
	_ = p[1]
	p[0] = byte(x)
	p[1] = byte(x >> 8)
}

// getLE16 reads a uint16 value from slice p using little endian encoding.
func getLE16(p []byte) uint16 {
	_ = p[1]
	return uint16(p[0]) | uint16(p[1])<<8
}

// putLE32 write a uint32 value into the slice p using little endian encoding.
// The p slice must have at least length four.
func putLE32(p []byte, x uint32) {
	_ = p[3]
	p[0] = byte(x)
	p[1] = byte(x >> 8)
	p[2] = byte(x >> 16)
	p[3] = byte(x >> 24)
}

// getLE32 reads a uint32 value from the slice p. Slice p must have at least
// length 4.
func getLE32(p []byte) uint32 {
	_ = p[3]
	var x uint32
	x = uint32(p[0])
	x |= uint32(p[1]) << 8
	x |= uint32(p[2]) << 16
	x |= uint32(p[3]) << 24
	return x
}
