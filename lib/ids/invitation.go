// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ids

import (
	"strings"

	"github.com/bureau-foundation/plasma/lib/wire"
)

// invitationAlphabet avoids vowels and easily confused glyphs so codes
// never spell words and survive being read aloud.
const invitationAlphabet = "CDFHJKLMNPRTVWXY"

const invitationCodeLength = 6

// InvitationID names a temporary realm hosted by one server. Its text
// form is a six-letter code packing the server number and a 16-bit
// sequence number.
type InvitationID struct {
	Server ServerNumber
	Number uint16
}

func (inv InvitationID) IsZero() bool { return inv.Server == 0 }

// Code returns the six-letter form. Each letter carries four bits;
// the alphabet is rotated by position so repeated nibbles do not
// produce repeated letters.
func (inv InvitationID) Code() string {
	packed := uint32(inv.Server)<<16 | uint32(inv.Number)
	var code [invitationCodeLength]byte
	for i := range code {
		code[i] = invitationAlphabet[(packed+uint32(i))%16]
		packed >>= 4
	}
	return string(code[:])
}

func (inv InvitationID) String() string { return inv.Code() }

// ParseInvitationID parses a code produced by Code. Lower-case input
// is accepted.
func ParseInvitationID(text string) (InvitationID, error) {
	if len(text) != invitationCodeLength {
		return InvitationID{}, invalid("invitation", text, "want 6 letters")
	}
	upper := strings.ToUpper(text)
	var packed uint32
	for i := invitationCodeLength - 1; i >= 0; i-- {
		position := strings.IndexByte(invitationAlphabet, upper[i])
		if position < 0 {
			return InvitationID{}, invalid("invitation", text, "letter outside alphabet")
		}
		packed = packed<<4 | uint32(position-i+16)%16
	}
	inv := InvitationID{Server: ServerNumber(packed >> 16), Number: uint16(packed)}
	if inv.Server == 0 {
		return InvitationID{}, invalid("invitation", text, "zero server number")
	}
	return inv, nil
}

func (inv InvitationID) MarshalText() ([]byte, error) { return []byte(inv.Code()), nil }

func (inv *InvitationID) UnmarshalText(text []byte) (err error) {
	*inv, err = ParseInvitationID(string(text))
	return err
}

func (inv InvitationID) Encode(e *wire.Encoder) {
	inv.Server.Encode(e)
	e.Uvarint(uint64(inv.Number))
}

func DecodeInvitationID(d *wire.Decoder, field string) InvitationID {
	server := DecodeServerNumber(d, field+".server")
	number := d.Uint16(field + ".number")
	return InvitationID{Server: server, Number: number}
}
