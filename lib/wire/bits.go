// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

// bitWriter accumulates values of arbitrary small widths and appends
// whole bytes to buffer, least significant bit first.
type bitWriter struct {
	buffer  []byte
	pending uint32
	count   uint
}

func (w *bitWriter) write(value uint32, width uint) {
	value &= (1 << width) - 1
	w.pending |= value << w.count
	w.count += width
	for w.count >= 8 {
		w.buffer = append(w.buffer, byte(w.pending))
		w.pending >>= 8
		w.count -= 8
	}
}

// flush appends any partial byte and returns the buffer.
func (w *bitWriter) flush() []byte {
	if w.count > 0 {
		w.buffer = append(w.buffer, byte(w.pending))
		w.pending = 0
		w.count = 0
	}
	return w.buffer
}

// bitReader is the inverse of bitWriter over a fixed byte slice.
type bitReader struct {
	data    []byte
	pending uint32
	count   uint
}

func (r *bitReader) read(width uint) uint8 {
	for r.count < width {
		r.pending |= uint32(r.data[0]) << r.count
		r.data = r.data[1:]
		r.count += 8
	}
	value := uint8(r.pending & ((1 << width) - 1))
	r.pending >>= width
	r.count -= width
	return value
}

// packedSize returns the number of bytes PackBits writes for count
// values of width bits.
func packedSize(width uint, count int) int {
	return (int(width)*count + 7) / 8
}
