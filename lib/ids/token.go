// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ids

import (
	"fmt"
	"strconv"

	"github.com/bureau-foundation/plasma/lib/wire"
)

// VisitorID identifies a browser or device, whether or not it has an
// account.
type VisitorID uint64

// UserID identifies an account.
type UserID uint64

// SessionToken authenticates a player session to its server.
type SessionToken uint64

// ServerToken authenticates a server to the backend.
type ServerToken uint64

func (v VisitorID) IsZero() bool    { return v == 0 }
func (u UserID) IsZero() bool       { return u == 0 }
func (s SessionToken) IsZero() bool { return s == 0 }
func (s ServerToken) IsZero() bool  { return s == 0 }

func (v VisitorID) String() string { return strconv.FormatUint(uint64(v), 10) }
func (u UserID) String() string    { return strconv.FormatUint(uint64(u), 10) }

// Tokens print as fixed-width hex so they are recognizable in logs.
func (s SessionToken) String() string { return formatToken(uint64(s)) }
func (s ServerToken) String() string  { return formatToken(uint64(s)) }

func formatToken(value uint64) string {
	return fmt.Sprintf("%016x", value)
}

func parseToken(typeName, text string) (uint64, error) {
	if len(text) != 16 {
		return 0, invalid(typeName, text, "want 16 hex digits")
	}
	value, err := strconv.ParseUint(text, 16, 64)
	if err != nil {
		return 0, invalid(typeName, text, "not hexadecimal")
	}
	if value == 0 {
		return 0, invalid(typeName, text, "zero is reserved")
	}
	return value, nil
}

// ParseVisitorID parses a decimal visitor ID.
func ParseVisitorID(text string) (VisitorID, error) {
	value, err := parseNonZero("visitor ID", text, 64)
	return VisitorID(value), err
}

// ParseUserID parses a decimal user ID.
func ParseUserID(text string) (UserID, error) {
	value, err := parseNonZero("user ID", text, 64)
	return UserID(value), err
}

// ParseSessionToken parses the 16-digit hex form.
func ParseSessionToken(text string) (SessionToken, error) {
	value, err := parseToken("session token", text)
	return SessionToken(value), err
}

// ParseServerToken parses the 16-digit hex form.
func ParseServerToken(text string) (ServerToken, error) {
	value, err := parseToken("server token", text)
	return ServerToken(value), err
}

func (v VisitorID) MarshalText() ([]byte, error)    { return []byte(v.String()), nil }
func (u UserID) MarshalText() ([]byte, error)       { return []byte(u.String()), nil }
func (s SessionToken) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (s ServerToken) MarshalText() ([]byte, error)  { return []byte(s.String()), nil }

func (v *VisitorID) UnmarshalText(text []byte) (err error) {
	*v, err = ParseVisitorID(string(text))
	return err
}

func (u *UserID) UnmarshalText(text []byte) (err error) {
	*u, err = ParseUserID(string(text))
	return err
}

func (s *SessionToken) UnmarshalText(text []byte) (err error) {
	*s, err = ParseSessionToken(string(text))
	return err
}

func (s *ServerToken) UnmarshalText(text []byte) (err error) {
	*s, err = ParseServerToken(string(text))
	return err
}

func (v VisitorID) Encode(e *wire.Encoder)    { e.Uvarint(uint64(v)) }
func (u UserID) Encode(e *wire.Encoder)       { e.Uvarint(uint64(u)) }
func (s SessionToken) Encode(e *wire.Encoder) { e.Uvarint(uint64(s)) }
func (s ServerToken) Encode(e *wire.Encoder)  { e.Uvarint(uint64(s)) }

func DecodeVisitorID(d *wire.Decoder, field string) VisitorID {
	return VisitorID(decodeNonZero(d, field))
}

func DecodeUserID(d *wire.Decoder, field string) UserID {
	return UserID(decodeNonZero(d, field))
}

func DecodeSessionToken(d *wire.Decoder, field string) SessionToken {
	return SessionToken(decodeNonZero(d, field))
}

func DecodeServerToken(d *wire.Decoder, field string) ServerToken {
	return ServerToken(decodeNonZero(d, field))
}
