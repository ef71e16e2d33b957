// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a byte sequence could not be decoded.
// These values appear in logs and metrics labels; do not renumber.
type ErrorKind uint8

const (
	// Truncated means the input ended inside a value.
	Truncated ErrorKind = iota + 1

	// UnknownVariant means a tag or scalar lies outside its defined
	// domain: an enum tag with no variant, a boolean other than 0 or
	// 1, reserved flag bits set, zero where a non-zero identifier is
	// required, or text that is not valid UTF-8.
	UnknownVariant

	// LengthOverflow means a declared length or element count is
	// larger than the bytes remaining in the buffer, or a varint does
	// not fit in 64 bits.
	LengthOverflow

	// CapacityExceeded means a declared length or element count is
	// larger than the declared capacity of the field. Construction of
	// a bounded value with too many elements fails with this kind too.
	CapacityExceeded

	// TrailingBytes means a complete value was decoded but input
	// remained. A frame carries exactly one value.
	TrailingBytes
)

// Sentinel errors, one per kind. A *DecodeError unwraps to the
// sentinel of its kind, so callers match with errors.Is.
var (
	ErrTruncated        = errors.New("wire: truncated input")
	ErrUnknownVariant   = errors.New("wire: unknown variant")
	ErrLengthOverflow   = errors.New("wire: length overflow")
	ErrCapacityExceeded = errors.New("wire: capacity exceeded")
	ErrTrailingBytes    = errors.New("wire: trailing bytes")
)

// String returns the lower-case name of the kind.
func (kind ErrorKind) String() string {
	switch kind {
	case Truncated:
		return "truncated"
	case UnknownVariant:
		return "unknown_variant"
	case LengthOverflow:
		return "length_overflow"
	case CapacityExceeded:
		return "capacity_exceeded"
	case TrailingBytes:
		return "trailing_bytes"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(kind))
	}
}

func (kind ErrorKind) sentinel() error {
	switch kind {
	case Truncated:
		return ErrTruncated
	case UnknownVariant:
		return ErrUnknownVariant
	case LengthOverflow:
		return ErrLengthOverflow
	case CapacityExceeded:
		return ErrCapacityExceeded
	case TrailingBytes:
		return ErrTrailingBytes
	default:
		return nil
	}
}

// DecodeError reports a rejected byte sequence. Field names the value
// being read when the problem was found (for example
// "heartbeat.realms"), Offset is the byte position of that value, and
// Detail is a short human-readable explanation.
type DecodeError struct {
	Kind   ErrorKind
	Field  string
	Offset int
	Detail string
}

func (e *DecodeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("wire: %s at offset %d (%s)", e.Kind, e.Offset, e.Field)
	}
	return fmt.Sprintf("wire: %s at offset %d (%s): %s", e.Kind, e.Offset, e.Field, e.Detail)
}

// Unwrap returns the sentinel error for the kind.
func (e *DecodeError) Unwrap() error {
	return e.Kind.sentinel()
}

// KindOf returns the ErrorKind carried by err, or zero if err does
// not wrap a *DecodeError or one of the sentinels.
func KindOf(err error) ErrorKind {
	var decodeError *DecodeError
	if errors.As(err, &decodeError) {
		return decodeError.Kind
	}
	for _, kind := range []ErrorKind{Truncated, UnknownVariant, LengthOverflow, CapacityExceeded, TrailingBytes} {
		if errors.Is(err, kind.sentinel()) {
			return kind
		}
	}
	return 0
}
