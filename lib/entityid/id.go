// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package entityid

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/bureau-foundation/plasma/lib/wire"
)

// Size is the encoded size of an ID in bytes.
const Size = 16

// textLength is the length of the Crockford base32 form: 128 bits in
// 5-bit groups, rounded up.
const textLength = 26

// maxMillis is the largest timestamp the 48-bit time field holds
// (year 10889).
const maxMillis = 1<<48 - 1

// ID is a time-ordered entity identifier: 48 bits of Unix
// milliseconds followed by 80 bits that disambiguate identifiers
// issued in the same millisecond. Both halves are big-endian, so byte
// order, string order and issuance order agree.
//
// The zero ID is never issued and stands for "absent".
type ID [Size]byte

// crockford is the Crockford base32 alphabet (no I, L, O, U).
const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var crockfordIndex [256]int8

func init() {
	for i := range crockfordIndex {
		crockfordIndex[i] = -1
	}
	for i := 0; i < len(crockford); i++ {
		crockfordIndex[crockford[i]] = int8(i)
		if lower := crockford[i] | 0x20; lower >= 'a' && lower <= 'z' {
			crockfordIndex[lower] = int8(i)
		}
	}
}

// ErrInvalid reports a malformed textual ID.
var ErrInvalid = errors.New("entityid: invalid identifier")

// Compare orders a and b by issuance time: -1 if a was issued before
// b, +1 if after, 0 if equal.
func Compare(a, b ID) int {
	return bytes.Compare(a[:], b[:])
}

// IsZero reports whether id is the zero ID.
func (id ID) IsZero() bool {
	return id == ID{}
}

// Millis returns the Unix millisecond timestamp embedded in id.
func (id ID) Millis() uint64 {
	return binary.BigEndian.Uint64(id[:8]) >> 16
}

// Time returns the embedded timestamp. IDs issued after a clock
// regression carry the time of the latest ID, not the regressed
// reading.
func (id ID) Time() time.Time {
	return time.UnixMilli(int64(id.Millis())).UTC()
}

// halves splits id into its high and low 64-bit words.
func (id ID) halves() (uint64, uint64) {
	return binary.BigEndian.Uint64(id[:8]), binary.BigEndian.Uint64(id[8:])
}

func fromHalves(high, low uint64) ID {
	var id ID
	binary.BigEndian.PutUint64(id[:8], high)
	binary.BigEndian.PutUint64(id[8:], low)
	return id
}

// next returns id+1 as a 128-bit integer. The increment carries into
// the time field, which keeps ordering intact.
func (id ID) next() ID {
	high, low := id.halves()
	low++
	if low == 0 {
		high++
	}
	return fromHalves(high, low)
}

// String returns the 26-character Crockford base32 form.
func (id ID) String() string {
	text, _ := id.MarshalText()
	return string(text)
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	high, low := id.halves()
	out := make([]byte, textLength)
	// 130 bits of output for 128 bits of input: the first character
	// carries only the top 3 bits.
	for i := textLength - 1; i >= 0; i-- {
		out[i] = crockford[low&0x1f]
		low = low>>5 | high<<59
		high >>= 5
	}
	return out, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Parse decodes the Crockford base32 form produced by String.
// Lower-case letters are accepted.
func Parse(text string) (ID, error) {
	if len(text) != textLength {
		return ID{}, fmt.Errorf("%w: length %d, want %d", ErrInvalid, len(text), textLength)
	}
	var high, low uint64
	for i := 0; i < textLength; i++ {
		value := crockfordIndex[text[i]]
		if value < 0 {
			return ID{}, fmt.Errorf("%w: character %q at position %d", ErrInvalid, text[i], i)
		}
		if i == 0 && value > 7 {
			return ID{}, fmt.Errorf("%w: value exceeds 128 bits", ErrInvalid)
		}
		high = high<<5 | low>>59
		low = low<<5 | uint64(value)
	}
	return fromHalves(high, low), nil
}

// Encode writes id as 16 fixed bytes.
func (id ID) Encode(e *wire.Encoder) {
	e.Fixed(id[:])
}

// Decode reads an ID written by Encode. A zero ID is accepted; use
// DecodeRequired where the field must be present.
func Decode(d *wire.Decoder, field string) ID {
	var id ID
	d.FixedInto(field, id[:])
	return id
}

// DecodeRequired reads an ID that must not be zero.
func DecodeRequired(d *wire.Decoder, field string) ID {
	id := Decode(d, field)
	if d.Err() == nil && id.IsZero() {
		d.Fail(wire.UnknownVariant, field, "zero identifier")
	}
	return id
}
