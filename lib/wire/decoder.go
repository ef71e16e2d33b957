// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// Decoder reads values from a byte slice. Errors are sticky: the
// first failure is recorded, every later read returns a zero value,
// and Err (or Finish) reports the recorded failure. This lets schema
// decoders read a whole record and check once at the end.
//
// Every read takes the name of the field being decoded; it appears in
// the *DecodeError so a rejected payload can be diagnosed from logs.
type Decoder struct {
	data   []byte
	offset int
	err    error
}

// NewDecoder returns a Decoder over data. The Decoder never retains
// data beyond the values it returns; Blob and Fixed return copies.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Err returns the first error encountered, or nil.
func (d *Decoder) Err() error {
	return d.err
}

// Offset returns the position of the next unread byte.
func (d *Decoder) Offset() int {
	return d.offset
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.data) - d.offset
}

// Fail records a decode error unless one is already recorded. Schema
// decoders call it for domain checks the primitive reads cannot make
// (an identifier that must be non-zero, a register value out of
// range).
func (d *Decoder) Fail(kind ErrorKind, field string, detail string) {
	if d.err != nil {
		return
	}
	d.err = &DecodeError{Kind: kind, Field: field, Offset: d.offset, Detail: detail}
}

// Failf is Fail with a formatted detail.
func (d *Decoder) Failf(kind ErrorKind, field string, format string, args ...any) {
	if d.err != nil {
		return
	}
	d.Fail(kind, field, fmt.Sprintf(format, args...))
}

// Finish returns the recorded error, or a TrailingBytes error if
// unread input remains.
func (d *Decoder) Finish() error {
	if d.err == nil && d.Remaining() > 0 {
		d.Failf(TrailingBytes, "frame", "%d unread bytes", d.Remaining())
	}
	return d.err
}

func (d *Decoder) take(field string, n int) []byte {
	if d.err != nil {
		return nil
	}
	if n > d.Remaining() {
		d.Failf(Truncated, field, "need %d bytes, have %d", n, d.Remaining())
		return nil
	}
	chunk := d.data[d.offset : d.offset+n]
	d.offset += n
	return chunk
}

// Uvarint reads an unsigned LEB128 varint.
func (d *Decoder) Uvarint(field string) uint64 {
	if d.err != nil {
		return 0
	}
	value, n := binary.Uvarint(d.data[d.offset:])
	switch {
	case n == 0:
		d.Fail(Truncated, field, "varint cut short")
		return 0
	case n < 0:
		d.Fail(LengthOverflow, field, "varint exceeds 64 bits")
		return 0
	case n != uvarintLen(value):
		d.Failf(UnknownVariant, field, "overlong varint: %d bytes for %d", n, value)
		return 0
	}
	d.offset += n
	return value
}

// Varint reads a zig-zag encoded signed varint.
func (d *Decoder) Varint(field string) int64 {
	if d.err != nil {
		return 0
	}
	value, n := binary.Varint(d.data[d.offset:])
	switch {
	case n == 0:
		d.Fail(Truncated, field, "varint cut short")
		return 0
	case n < 0:
		d.Fail(LengthOverflow, field, "varint exceeds 64 bits")
		return 0
	case n != uvarintLen(zigzag(value)):
		d.Failf(UnknownVariant, field, "overlong varint: %d bytes for %d", n, value)
		return 0
	}
	d.offset += n
	return value
}

// Uint16 reads a uvarint that must fit in 16 bits.
func (d *Decoder) Uint16(field string) uint16 {
	start := d.offset
	value := d.Uvarint(field)
	if value > math.MaxUint16 {
		d.offset = start
		d.Failf(UnknownVariant, field, "value %d out of range for uint16", value)
		return 0
	}
	return uint16(value)
}

// Uint32 reads a uvarint that must fit in 32 bits.
func (d *Decoder) Uint32(field string) uint32 {
	start := d.offset
	value := d.Uvarint(field)
	if value > math.MaxUint32 {
		d.offset = start
		d.Failf(UnknownVariant, field, "value %d out of range for uint32", value)
		return 0
	}
	return uint32(value)
}

// Tag reads a uvarint enum tag that must be less than limit.
func (d *Decoder) Tag(field string, limit uint64) uint64 {
	start := d.offset
	value := d.Uvarint(field)
	if d.err == nil && value >= limit {
		d.offset = start
		d.Failf(UnknownVariant, field, "tag %d (have %d variants)", value, limit)
		return 0
	}
	return value
}

// Uint8 reads a single byte.
func (d *Decoder) Uint8(field string) uint8 {
	chunk := d.take(field, 1)
	if chunk == nil {
		return 0
	}
	return chunk[0]
}

// Bool reads a byte that must be 0 or 1.
func (d *Decoder) Bool(field string) bool {
	start := d.offset
	value := d.Uint8(field)
	if value > 1 {
		d.offset = start
		d.Failf(UnknownVariant, field, "boolean byte %#02x", value)
		return false
	}
	return value == 1
}

// Float32 reads four little-endian bytes of IEEE 754 bits.
func (d *Decoder) Float32(field string) float32 {
	chunk := d.take(field, 4)
	if chunk == nil {
		return 0
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(chunk))
}

// Float64 reads eight little-endian bytes of IEEE 754 bits.
func (d *Decoder) Float64(field string) float64 {
	chunk := d.take(field, 8)
	if chunk == nil {
		return 0
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(chunk))
}

// FixedInto fills dst with the next len(dst) bytes.
func (d *Decoder) FixedInto(field string, dst []byte) {
	chunk := d.take(field, len(dst))
	if chunk == nil {
		clear(dst)
		return
	}
	copy(dst, chunk)
}

// length reads a uvarint length prefix and checks it against capacity
// and against the bytes remaining, in that order.
func (d *Decoder) length(field string, capacity int) int {
	start := d.offset
	declared := d.Uvarint(field)
	if d.err != nil {
		return 0
	}
	if declared > uint64(capacity) {
		d.offset = start
		d.Failf(CapacityExceeded, field, "length %d, capacity %d", declared, capacity)
		return 0
	}
	if declared > uint64(d.Remaining()) {
		d.offset = start
		d.Failf(LengthOverflow, field, "length %d, %d bytes remain", declared, d.Remaining())
		return 0
	}
	return int(declared)
}

// Blob reads a length-prefixed byte string of at most capacity bytes
// and returns a copy.
func (d *Decoder) Blob(field string, capacity int) []byte {
	n := d.length(field, capacity)
	if d.err != nil {
		return nil
	}
	chunk := d.take(field, n)
	if chunk == nil {
		return nil
	}
	return append([]byte(nil), chunk...)
}

// String reads a length-prefixed UTF-8 string of at most capacity
// bytes. Invalid UTF-8 is rejected as UnknownVariant.
func (d *Decoder) String(field string, capacity int) string {
	start := d.offset
	n := d.length(field, capacity)
	if d.err != nil {
		return ""
	}
	chunk := d.take(field, n)
	if chunk == nil {
		return ""
	}
	if !utf8.Valid(chunk) {
		d.offset = start
		d.Fail(UnknownVariant, field, "invalid UTF-8")
		return ""
	}
	return string(chunk)
}

// Count reads an element count for a sequence of at most capacity
// elements, each of which occupies at least minElementSize bytes on
// the wire. The second check bounds allocation by the input size, so
// a forged count cannot make the caller allocate more than the
// payload could describe.
func (d *Decoder) Count(field string, capacity int, minElementSize int) int {
	start := d.offset
	declared := d.Uvarint(field)
	if d.err != nil {
		return 0
	}
	if declared > uint64(capacity) {
		d.offset = start
		d.Failf(CapacityExceeded, field, "%d elements, capacity %d", declared, capacity)
		return 0
	}
	if minElementSize > 0 && declared*uint64(minElementSize) > uint64(d.Remaining()) {
		d.offset = start
		d.Failf(LengthOverflow, field, "%d elements cannot fit in %d bytes", declared, d.Remaining())
		return 0
	}
	return int(declared)
}

// Flags reads one byte written by Encoder.Flags with n meaningful
// bits. Bits at or above n must be zero.
func (d *Decoder) Flags(field string, n int) [8]bool {
	var flags [8]bool
	start := d.offset
	packed := d.Uint8(field)
	if d.err != nil {
		return flags
	}
	if n < 8 && packed>>n != 0 {
		d.offset = start
		d.Failf(UnknownVariant, field, "reserved flag bits set in %#02x", packed)
		return flags
	}
	for i := range n {
		flags[i] = packed&(1<<i) != 0
	}
	return flags
}

// UnpackBits fills dst with values of width bits written by
// Encoder.PackBits. Padding bits in the final byte must be zero.
func (d *Decoder) UnpackBits(field string, width uint, dst []uint8) {
	if width == 0 || width > 8 {
		panic("wire: UnpackBits width must be 1..8")
	}
	size := packedSize(width, len(dst))
	start := d.offset
	chunk := d.take(field, size)
	if chunk == nil {
		clear(dst)
		return
	}
	reader := bitReader{data: chunk}
	for i := range dst {
		dst[i] = reader.read(width)
	}
	if reader.pending != 0 {
		d.offset = start
		d.Fail(UnknownVariant, field, "nonzero padding bits")
		clear(dst)
	}
}

// uvarintLen is the length of the minimal encoding of value. Only
// that encoding is accepted, so every value has one byte form.
func uvarintLen(value uint64) int {
	return len(binary.AppendUvarint(nil, value))
}

func zigzag(value int64) uint64 {
	return uint64(value<<1) ^ uint64(value>>63)
}
