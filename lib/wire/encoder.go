// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"math"
)

// Encoder appends values to a growing byte buffer. Encoding never
// fails: every value a caller can hold has a representation. Bounds
// are enforced when values are constructed and when they are decoded.
type Encoder struct {
	buffer []byte
}

// NewEncoder returns an Encoder with sizeHint bytes preallocated.
func NewEncoder(sizeHint int) *Encoder {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Encoder{buffer: make([]byte, 0, sizeHint)}
}

// Bytes returns the encoded bytes. The slice aliases the encoder's
// buffer until the next write.
func (e *Encoder) Bytes() []byte {
	return e.buffer
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return len(e.buffer)
}

// Uvarint writes v as an unsigned LEB128 varint (1 to 10 bytes).
func (e *Encoder) Uvarint(v uint64) {
	e.buffer = binary.AppendUvarint(e.buffer, v)
}

// Varint writes v zig-zag encoded, so small negative values stay
// short.
func (e *Encoder) Varint(v int64) {
	e.buffer = binary.AppendVarint(e.buffer, v)
}

// Uint8 writes a single byte.
func (e *Encoder) Uint8(v uint8) {
	e.buffer = append(e.buffer, v)
}

// Bool writes 1 for true and 0 for false.
func (e *Encoder) Bool(v bool) {
	if v {
		e.buffer = append(e.buffer, 1)
	} else {
		e.buffer = append(e.buffer, 0)
	}
}

// Float32 writes the IEEE 754 bits of v, little-endian.
func (e *Encoder) Float32(v float32) {
	e.buffer = binary.LittleEndian.AppendUint32(e.buffer, math.Float32bits(v))
}

// Float64 writes the IEEE 754 bits of v, little-endian.
func (e *Encoder) Float64(v float64) {
	e.buffer = binary.LittleEndian.AppendUint64(e.buffer, math.Float64bits(v))
}

// Fixed writes raw bytes with no length prefix. The reader must know
// the length from the schema.
func (e *Encoder) Fixed(b []byte) {
	e.buffer = append(e.buffer, b...)
}

// Blob writes a uvarint length followed by the bytes.
func (e *Encoder) Blob(b []byte) {
	e.Uvarint(uint64(len(b)))
	e.buffer = append(e.buffer, b...)
}

// String writes a uvarint length followed by the UTF-8 bytes of s.
func (e *Encoder) String(s string) {
	e.Uvarint(uint64(len(s)))
	e.buffer = append(e.buffer, s...)
}

// Flags packs up to eight booleans into one byte, the first argument
// in the least significant bit. Unused high bits are zero, and the
// decoder rejects a byte with any of them set.
func (e *Encoder) Flags(flags ...bool) {
	if len(flags) > 8 {
		panic("wire: Flags takes at most 8 values")
	}
	var packed uint8
	for i, flag := range flags {
		if flag {
			packed |= 1 << i
		}
	}
	e.buffer = append(e.buffer, packed)
}

// PackBits writes each value in width bits (1 to 8), least
// significant bit first, padding the final byte with zeros. The
// caller guarantees every value fits in width bits; higher bits are
// discarded.
func (e *Encoder) PackBits(width uint, values []uint8) {
	if width == 0 || width > 8 {
		panic("wire: PackBits width must be 1..8")
	}
	var writer bitWriter
	writer.buffer = e.buffer
	for _, value := range values {
		writer.write(uint32(value), width)
	}
	e.buffer = writer.flush()
}
