// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plasma

import (
	"fmt"

	"github.com/bureau-foundation/plasma/lib/ids"
	"github.com/bureau-foundation/plasma/lib/names"
	"github.com/bureau-foundation/plasma/lib/wire"
)

// RoleKind is the part a server plays in the fleet.
type RoleKind uint8

const (
	// RoleStandby servers are running but receive no players.
	RoleStandby RoleKind = iota
	// RolePublic servers host the public default realm.
	RolePublic
	// RoleUnlisted servers host only players who know their address.
	RoleUnlisted
	// RoleRealms servers host the listed realms.
	RoleRealms
	// RoleFailed servers have stopped serving; players should move to
	// the redirect server if one is named.
	RoleFailed
	// RoleTerminating servers are draining before shutdown.
	RoleTerminating
	// RoleDeleting servers are being removed from the fleet.
	RoleDeleting

	roleKindCount
)

var roleKindNames = [roleKindCount]string{"standby", "public", "unlisted", "realms", "failed", "terminating", "deleting"}

func (k RoleKind) String() string {
	if k < roleKindCount {
		return roleKindNames[k]
	}
	return fmt.Sprintf("RoleKind(%d)", k)
}

func (k RoleKind) MarshalText() ([]byte, error) { return marshalEnum(k, k < roleKindCount) }

func (k *RoleKind) UnmarshalText(text []byte) error {
	return unmarshalEnum(k, "role", roleKindNames[:], text)
}

// ServerRole is a RoleKind with its payload. Realms is set only for
// RoleRealms; Since, Diagnostic and Redirect only for RoleFailed
// (Diagnostic and Redirect are optional).
type ServerRole struct {
	Kind       RoleKind                              `json:"kind"`
	Realms     wire.Bounded[ids.RealmID, wire.Cap32] `json:"realms,omitzero"`
	Since      Millis                                `json:"since,omitempty"`
	Diagnostic names.Text                            `json:"diagnostic,omitzero"`
	Redirect   ids.ServerID                          `json:"redirect,omitzero"`
}

// RealmsRole returns the role of a server hosting realms.
func RealmsRole(realms ...ids.RealmID) (ServerRole, error) {
	bounded, err := wire.NewBounded[ids.RealmID, wire.Cap32](realms...)
	if err != nil {
		return ServerRole{}, err
	}
	return ServerRole{Kind: RoleRealms, Realms: bounded}, nil
}

// FailedRole returns the role of a server that failed at since.
// diagnostic and redirect may be zero.
func FailedRole(since Millis, diagnostic names.Text, redirect ids.ServerID) ServerRole {
	return ServerRole{Kind: RoleFailed, Since: since, Diagnostic: diagnostic, Redirect: redirect}
}

func (r ServerRole) validate(v *validator) {
	if r.Kind >= roleKindCount {
		v.fail("role.kind", "unknown role %s", r.Kind)
		return
	}
	if r.Kind == RoleRealms {
		v.require("role.realms", r.Realms.Len() > 0, "realms role without realms")
		seen := make(map[ids.RealmID]bool, r.Realms.Len())
		for i, realm := range r.Realms.All() {
			field := fmt.Sprintf("role.realms[%d]", i)
			v.check(field, realm.Validate())
			v.require(field, !seen[realm], "duplicate realm "+realm.String())
			seen[realm] = true
		}
	} else {
		v.require("role.realms", r.Realms.Len() == 0, "realms set on "+r.Kind.String()+" role")
	}
	if r.Kind == RoleFailed {
		v.timestamp("role.since", r.Since)
		v.optionalText("role.diagnostic", r.Diagnostic, names.Diagnostic)
		if r.Redirect != (ids.ServerID{}) {
			v.check("role.redirect", r.Redirect.Validate())
		}
	} else {
		v.require("role.since", r.Since == 0, "since set on "+r.Kind.String()+" role")
		v.require("role.diagnostic", r.Diagnostic.IsZero(), "diagnostic set on "+r.Kind.String()+" role")
		v.require("role.redirect", r.Redirect == ids.ServerID{}, "redirect set on "+r.Kind.String()+" role")
	}
}

func (r ServerRole) encode(e *wire.Encoder) {
	e.Uvarint(uint64(r.Kind))
	switch r.Kind {
	case RoleRealms:
		r.Realms.Encode(e, func(e *wire.Encoder, realm ids.RealmID) { realm.Encode(e) })
	case RoleFailed:
		r.Since.Encode(e)
		e.Flags(!r.Diagnostic.IsZero(), !r.Redirect.IsZero())
		if !r.Diagnostic.IsZero() {
			r.Diagnostic.Encode(e)
		}
		if !r.Redirect.IsZero() {
			r.Redirect.Encode(e)
		}
	}
}

func decodeServerRole(d *wire.Decoder, field string) ServerRole {
	r := ServerRole{Kind: RoleKind(d.Tag(field+".kind", uint64(roleKindCount)))}
	switch r.Kind {
	case RoleRealms:
		r.Realms = wire.DecodeBounded[ids.RealmID, wire.Cap32](d, field+".realms", 1, func(d *wire.Decoder) ids.RealmID {
			return ids.DecodeRealmID(d, field+".realm")
		})
	case RoleFailed:
		r.Since = decodeMillis(d, field+".since")
		present := d.Flags(field+".present", 2)
		if present[0] {
			r.Diagnostic = names.Decode(d, field+".diagnostic", names.Diagnostic)
		}
		if present[1] {
			r.Redirect = ids.DecodeServerID(d, field+".redirect")
		}
	}
	return r
}

// RoleUpdate assigns a server its role. The backend sends it after
// registration and whenever the role changes.
type RoleUpdate struct {
	Server ids.ServerID `json:"server"`
	Role   ServerRole   `json:"role"`
}

func (RoleUpdate) Kind() Kind { return KindRoleUpdate }

func (m RoleUpdate) validate(v *validator) {
	v.check("server", m.Server.Validate())
	m.Role.validate(v)
}

func (m RoleUpdate) encode(e *wire.Encoder) {
	m.Server.Encode(e)
	m.Role.encode(e)
}

func decodeRoleUpdate(d *wire.Decoder) Message {
	return RoleUpdate{
		Server: ids.DecodeServerID(d, "role_update.server"),
		Role:   decodeServerRole(d, "role_update.role"),
	}
}

func (m RoleUpdate) classify(classifier names.Classifier) Message {
	m.Role.Diagnostic = m.Role.Diagnostic.Classify(names.Diagnostic, classifier)
	return m
}

func (m RoleUpdate) dispatch(h Handler) error { return h.RoleUpdate(m) }

// Warning asks a server to show an operator message to one player, or
// to everyone on the server when Player is zero.
type Warning struct {
	Server  ids.ServerID `json:"server"`
	Player  ids.PlayerID `json:"player,omitempty"`
	Message names.Text   `json:"message"`
	At      Millis       `json:"at"`
}

func (Warning) Kind() Kind { return KindWarning }

func (m Warning) validate(v *validator) {
	v.check("server", m.Server.Validate())
	v.text("message", m.Message, names.ChatMessage)
	v.timestamp("at", m.At)
}

func (m Warning) encode(e *wire.Encoder) {
	m.Server.Encode(e)
	e.Bool(!m.Player.IsZero())
	if !m.Player.IsZero() {
		m.Player.Encode(e)
	}
	m.Message.Encode(e)
	m.At.Encode(e)
}

func decodeWarning(d *wire.Decoder) Message {
	m := Warning{Server: ids.DecodeServerID(d, "warning.server")}
	if d.Bool("warning.has_player") {
		m.Player = ids.DecodePlayerID(d, "warning.player")
	}
	m.Message = names.Decode(d, "warning.message", names.ChatMessage)
	m.At = decodeMillis(d, "warning.at")
	return m
}

func (m Warning) classify(classifier names.Classifier) Message {
	m.Message = m.Message.Classify(names.ChatMessage, classifier)
	return m
}

func (m Warning) dispatch(h Handler) error { return h.Warning(m) }
