// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ids

import (
	"strconv"
	"strings"

	"github.com/bureau-foundation/plasma/lib/wire"
)

// ServerKind distinguishes servers operated in the cloud fleet from
// servers run locally by developers and self-hosters.
type ServerKind uint8

const (
	Cloud ServerKind = iota
	Local
)

var serverKindNames = enumNames{"Cloud", "Local"}

func (k ServerKind) String() string { return serverKindNames.name(uint8(k)) }

// ParseServerKind parses "Cloud" or "Local".
func ParseServerKind(text string) (ServerKind, error) {
	tag, err := serverKindNames.parse("server kind", text)
	return ServerKind(tag), err
}

// ServerNumber numbers servers within a kind. Zero is reserved.
type ServerNumber uint8

func (n ServerNumber) IsZero() bool { return n == 0 }

func (n ServerNumber) String() string { return strconv.Itoa(int(n)) }

// ParseServerNumber parses a decimal server number in 1..255.
func ParseServerNumber(text string) (ServerNumber, error) {
	value, err := parseNonZero("server number", text, 8)
	return ServerNumber(value), err
}

// Encode writes n as one byte.
func (n ServerNumber) Encode(e *wire.Encoder) { e.Uint8(uint8(n)) }

// DecodeServerNumber reads a non-zero server number.
func DecodeServerNumber(d *wire.Decoder, field string) ServerNumber {
	value := d.Uint8(field)
	if d.Err() == nil && value == 0 {
		d.Fail(wire.UnknownVariant, field, "zero server number")
	}
	return ServerNumber(value)
}

// ServerID identifies one game server process. Its text form is
// "Kind/Number", for example "Cloud/8".
type ServerID struct {
	Kind   ServerKind
	Number ServerNumber
}

// CloudServer returns the ID of cloud server number n.
func CloudServer(n ServerNumber) ServerID { return ServerID{Kind: Cloud, Number: n} }

// LocalServer returns the ID of local server number n.
func LocalServer(n ServerNumber) ServerID { return ServerID{Kind: Local, Number: n} }

func (id ServerID) IsZero() bool { return id.Number == 0 }

func (id ServerID) String() string {
	return id.Kind.String() + "/" + id.Number.String()
}

// ParseServerID parses the "Kind/Number" form.
func ParseServerID(text string) (ServerID, error) {
	kindText, numberText, found := strings.Cut(text, "/")
	if !found {
		return ServerID{}, invalid("server ID", text, "missing '/'")
	}
	kind, err := ParseServerKind(kindText)
	if err != nil {
		return ServerID{}, err
	}
	number, err := ParseServerNumber(numberText)
	if err != nil {
		return ServerID{}, err
	}
	return ServerID{Kind: kind, Number: number}, nil
}

func (id ServerID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *ServerID) UnmarshalText(text []byte) error {
	parsed, err := ParseServerID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Encode writes the kind tag then the number.
func (id ServerID) Encode(e *wire.Encoder) {
	e.Uvarint(uint64(id.Kind))
	id.Number.Encode(e)
}

// DecodeServerID reads a ServerID written by Encode.
func DecodeServerID(d *wire.Decoder, field string) ServerID {
	kind := ServerKind(serverKindNames.decode(d, field+".kind"))
	number := DecodeServerNumber(d, field+".number")
	return ServerID{Kind: kind, Number: number}
}
