// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ids

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bureau-foundation/plasma/lib/wire"
)

// ErrInvalid reports text that does not parse as the requested
// identifier type. Parse functions wrap it with the offending input.
var ErrInvalid = errors.New("ids: invalid identifier")

func invalid(typeName, text string, reason string) error {
	return fmt.Errorf("%w: %s %q: %s", ErrInvalid, typeName, text, reason)
}

// enumNames maps a small enumeration's wire tags to its text names.
type enumNames []string

func (names enumNames) name(tag uint8) string {
	if int(tag) < len(names) {
		return names[tag]
	}
	return "Unknown(" + strconv.Itoa(int(tag)) + ")"
}

func (names enumNames) parse(typeName, text string) (uint8, error) {
	for i, name := range names {
		if name == text {
			return uint8(i), nil
		}
	}
	return 0, invalid(typeName, text, "unknown name")
}

func (names enumNames) decode(d *wire.Decoder, field string) uint8 {
	return uint8(d.Tag(field, uint64(len(names))))
}

func (names enumNames) valid(tag uint8) bool {
	return int(tag) < len(names)
}

// parseNonZero parses a decimal number in [1, max].
func parseNonZero(typeName, text string, bits int) (uint64, error) {
	value, err := strconv.ParseUint(text, 10, bits)
	if err != nil {
		return 0, invalid(typeName, text, "not a decimal number in range")
	}
	if value == 0 {
		return 0, invalid(typeName, text, "zero is reserved")
	}
	return value, nil
}

// decodeNonZero reads a uvarint that must not be zero.
func decodeNonZero(d *wire.Decoder, field string) uint64 {
	value := d.Uvarint(field)
	if d.Err() == nil && value == 0 {
		d.Fail(wire.UnknownVariant, field, "zero identifier")
	}
	return value
}
