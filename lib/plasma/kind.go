// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plasma

import (
	"errors"
	"fmt"
	"slices"
)

// Kind tags each message on the wire. The high byte groups kinds by
// area; the top bit is set on messages the backend sends to servers.
// Values are part of the dialect and are never reused.
type Kind uint16

const (
	KindRegisterServer   Kind = 0x0101
	KindUnregisterServer Kind = 0x0102
	KindHeartbeat        Kind = 0x0103

	KindPlayerJoin         Kind = 0x0201
	KindPlayerLeave        Kind = 0x0202
	KindAuthenticatePlayer Kind = 0x0203

	KindModerationQuery Kind = 0x0301
	KindModerateChat    Kind = 0x0302

	KindAnalyticsSnapshot Kind = 0x0401
	KindServerLog         Kind = 0x0402

	KindUpdateLeaderboard Kind = 0x0501

	KindRoleUpdate          Kind = 0x8101
	KindWarning             Kind = 0x8102
	KindPlayerAuthenticated Kind = 0x8201
	KindModerationResult    Kind = 0x8301
	KindLeaderboard         Kind = 0x8501
)

// ErrUnknownKind reports a kind name or number outside the dialect.
var ErrUnknownKind = errors.New("plasma: unknown message kind")

// Direction says which side of the link sends a kind.
type Direction uint8

const (
	// ToBackend messages are sent by game servers.
	ToBackend Direction = iota
	// ToServer messages are sent by the backend.
	ToServer
)

func (d Direction) String() string {
	if d == ToServer {
		return "to_server"
	}
	return "to_backend"
}

const backendBit Kind = 0x8000

func (k Kind) Direction() Direction {
	if k&backendBit != 0 {
		return ToServer
	}
	return ToBackend
}

// Known reports whether k is part of the dialect.
func (k Kind) Known() bool {
	_, ok := registry[k]
	return ok
}

// String returns the snake_case name of k, for example "heartbeat".
func (k Kind) String() string {
	if info, ok := registry[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%#04x)", uint16(k))
}

// ParseKind parses a name returned by String.
func ParseKind(text string) (Kind, error) {
	for kind, info := range registry {
		if info.name == text {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, text)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Known() {
		return nil, fmt.Errorf("%w: %#04x", ErrUnknownKind, uint16(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) (err error) {
	*k, err = ParseKind(string(text))
	return err
}

// Kinds returns every kind in ascending order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for kind := range registry {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}
