// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plasma

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bureau-foundation/plasma/lib/wire"
)

// kindInfo describes one kind: its name, its wire decoder and its JSON
// decoder.
type kindInfo struct {
	name     string
	decode   func(*wire.Decoder) Message
	fromJSON func([]byte) (Message, error)
}

var registry = map[Kind]kindInfo{
	KindRegisterServer:      {"register_server", decodeRegisterServer, fromJSON[RegisterServer]},
	KindUnregisterServer:    {"unregister_server", decodeUnregisterServer, fromJSON[UnregisterServer]},
	KindHeartbeat:           {"heartbeat", decodeHeartbeat, fromJSON[Heartbeat]},
	KindPlayerJoin:          {"player_join", decodePlayerJoin, fromJSON[PlayerJoin]},
	KindPlayerLeave:         {"player_leave", decodePlayerLeave, fromJSON[PlayerLeave]},
	KindAuthenticatePlayer:  {"authenticate_player", decodeAuthenticatePlayer, fromJSON[AuthenticatePlayer]},
	KindModerationQuery:     {"moderation_query", decodeModerationQuery, fromJSON[ModerationQuery]},
	KindModerateChat:        {"moderate_chat", decodeModerateChat, fromJSON[ModerateChat]},
	KindAnalyticsSnapshot:   {"analytics_snapshot", decodeAnalyticsSnapshot, fromJSON[AnalyticsSnapshot]},
	KindServerLog:           {"server_log", decodeServerLog, fromJSON[ServerLog]},
	KindUpdateLeaderboard:   {"update_leaderboard", decodeUpdateLeaderboard, fromJSON[UpdateLeaderboard]},
	KindRoleUpdate:          {"role_update", decodeRoleUpdate, fromJSON[RoleUpdate]},
	KindWarning:             {"warning", decodeWarning, fromJSON[Warning]},
	KindPlayerAuthenticated: {"player_authenticated", decodePlayerAuthenticated, fromJSON[PlayerAuthenticated]},
	KindModerationResult:    {"moderation_result", decodeModerationResult, fromJSON[ModerationResult]},
	KindLeaderboard:         {"leaderboard", decodeLeaderboard, fromJSON[Leaderboard]},
}

// encodeSizeHint covers most messages without a reallocation.
const encodeSizeHint = 64

// Encode writes m's kind followed by its fields. It fails with a
// *ValidationError if m is structurally invalid (see Validate); the
// clock is not consulted.
func Encode(m Message) ([]byte, error) {
	if m == nil {
		return nil, errors.New("plasma: encode of nil message")
	}
	if err := structural(m); err != nil {
		return nil, err
	}
	encoder := wire.NewEncoder(encodeSizeHint)
	encoder.Uvarint(uint64(m.Kind()))
	m.encode(encoder)
	return encoder.Bytes(), nil
}

// Decode reads one message written by Encode under version tag. A tag
// other than Version fails with ErrUnsupportedVersion without looking
// at data. Malformed data fails with a *wire.DecodeError; a message
// whose fields decode but lie outside their domain (an empty required
// name, a fraction above one) is reported as UnknownVariant.
func Decode(tag VersionTag, data []byte) (Message, error) {
	if err := CheckVersion(tag); err != nil {
		return nil, err
	}
	decoder := wire.NewDecoder(data)
	kind := Kind(decoder.Uint16("kind"))
	if err := decoder.Err(); err != nil {
		return nil, err
	}
	info, ok := registry[kind]
	if !ok {
		decoder.Failf(wire.UnknownVariant, "kind", "unknown message kind %#04x", uint16(kind))
		return nil, decoder.Err()
	}
	m := info.decode(decoder)
	if err := decoder.Finish(); err != nil {
		return nil, err
	}
	if err := structural(m); err != nil {
		var invalid *ValidationError
		if !errors.As(err, &invalid) {
			return nil, err
		}
		return nil, &wire.DecodeError{
			Kind:   wire.UnknownVariant,
			Field:  info.name + "." + invalid.Field,
			Offset: len(data),
			Detail: invalid.Reason,
		}
	}
	return m, nil
}

// PeekKind returns the kind of an encoded message without decoding
// the rest.
func PeekKind(data []byte) (Kind, error) {
	decoder := wire.NewDecoder(data)
	kind := Kind(decoder.Uint16("kind"))
	if err := decoder.Err(); err != nil {
		return 0, err
	}
	if !kind.Known() {
		return 0, &wire.DecodeError{Kind: wire.UnknownVariant, Field: "kind", Detail: fmt.Sprintf("unknown message kind %#04x", uint16(kind))}
	}
	return kind, nil
}

func fromJSON[M Message](data []byte) (Message, error) {
	var m M
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

// Document is the JSON form of a message, tagged with its kind:
//
//	{"kind": "heartbeat", "message": {"server": "Cloud/1", ...}}
//
// Text fields may be given as bare strings, which decode as Pending
// text for ClassifyPending to classify.
type Document struct {
	Kind    Kind    `json:"kind"`
	Message Message `json:"message"`
}

// NewDocument wraps m with its kind.
func NewDocument(m Message) Document {
	return Document{Kind: m.Kind(), Message: m}
}

func (doc *Document) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind    Kind            `json:"kind"`
		Message json.RawMessage `json:"message"`
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&raw); err != nil {
		return fmt.Errorf("plasma: document: %w", err)
	}
	if len(raw.Message) == 0 {
		return errors.New("plasma: document has no message")
	}
	info, ok := registry[raw.Kind]
	if !ok {
		return fmt.Errorf("plasma: document: %w: %#04x", ErrUnknownKind, uint16(raw.Kind))
	}
	m, err := info.fromJSON(raw.Message)
	if err != nil {
		return fmt.Errorf("plasma: %s message: %w", raw.Kind, err)
	}
	*doc = Document{Kind: raw.Kind, Message: m}
	return nil
}
