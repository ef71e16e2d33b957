// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ids

import (
	"math"
	"strconv"

	"github.com/bureau-foundation/plasma/lib/wire"
)

// PlayerID identifies a player within one server. Odd IDs belong to
// human clients and even IDs to bots, so the two populations can be
// numbered independently without colliding. Zero is reserved.
type PlayerID uint16

// ClientPlayerID returns the n-th client ID (1, 3, 5, ...). It
// reports false when the result would not fit.
func ClientPlayerID(n uint16) (PlayerID, bool) {
	value := uint32(n)*2 + 1
	if value > math.MaxUint16 {
		return 0, false
	}
	return PlayerID(value), true
}

// BotPlayerID returns the n-th bot ID (2, 4, 6, ...). It reports false
// when the result would not fit.
func BotPlayerID(n uint16) (PlayerID, bool) {
	value := (uint32(n) + 1) * 2
	if value > math.MaxUint16 {
		return 0, false
	}
	return PlayerID(value), true
}

func (id PlayerID) IsZero() bool { return id == 0 }

// IsClient reports whether id belongs to a human client.
func (id PlayerID) IsClient() bool { return id%2 == 1 }

// IsBot reports whether id belongs to a bot.
func (id PlayerID) IsBot() bool { return id != 0 && id%2 == 0 }

func (id PlayerID) String() string { return strconv.Itoa(int(id)) }

// ParsePlayerID parses a decimal player ID.
func ParsePlayerID(text string) (PlayerID, error) {
	value, err := parseNonZero("player ID", text, 16)
	return PlayerID(value), err
}

func (id PlayerID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *PlayerID) UnmarshalText(text []byte) error {
	parsed, err := ParsePlayerID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id PlayerID) Encode(e *wire.Encoder) { e.Uvarint(uint64(id)) }

// DecodePlayerID reads a non-zero player ID.
func DecodePlayerID(d *wire.Decoder, field string) PlayerID {
	value := d.Uint16(field)
	if d.Err() == nil && value == 0 {
		d.Fail(wire.UnknownVariant, field, "zero player ID")
	}
	return PlayerID(value)
}
