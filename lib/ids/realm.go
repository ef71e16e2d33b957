// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ids

import (
	"strings"

	"github.com/bureau-foundation/plasma/lib/wire"
)

// MaxRealmNameBytes bounds a RealmName.
const MaxRealmNameBytes = 12

// RealmName is the name of a named realm. It is used as a DNS label
// and a path segment, so it is restricted to lower-case ASCII letters,
// digits and '-'. "www" is reserved.
type RealmName string

// ParseRealmName validates text as a RealmName.
func ParseRealmName(text string) (RealmName, error) {
	if text == "" || len(text) > MaxRealmNameBytes {
		return "", invalid("realm name", text, "want 1 to 12 bytes")
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-') {
			return "", invalid("realm name", text, "only a-z, 0-9 and '-' are allowed")
		}
	}
	if text == "www" {
		return "", invalid("realm name", text, "reserved")
	}
	return RealmName(text), nil
}

func (n RealmName) String() string { return string(n) }

func (n RealmName) MarshalText() ([]byte, error) { return []byte(n), nil }

func (n *RealmName) UnmarshalText(text []byte) (err error) {
	*n, err = ParseRealmName(string(text))
	return err
}

func (n RealmName) Encode(e *wire.Encoder) { e.String(string(n)) }

// DecodeRealmName reads and validates a RealmName.
func DecodeRealmName(d *wire.Decoder, field string) RealmName {
	text := d.String(field, MaxRealmNameBytes)
	if d.Err() != nil {
		return ""
	}
	name, err := ParseRealmName(text)
	if err != nil {
		d.Fail(wire.UnknownVariant, field, err.Error())
		return ""
	}
	return name
}

// RealmKind selects which RealmID fields are meaningful.
type RealmKind uint8

const (
	PublicDefault RealmKind = iota
	Named
	Temporary
)

var realmKindNames = enumNames{"public", "named", "temporary"}

func (k RealmKind) String() string { return realmKindNames.name(uint8(k)) }

// RealmID identifies a realm: the public default realm, a named
// realm, or a temporary realm reached through an invitation. It is
// comparable and usable as a map key. Use the constructors; fields
// that do not belong to Kind are zero.
type RealmID struct {
	Kind       RealmKind
	Name       RealmName
	Invitation InvitationID
}

// PublicDefaultRealm returns the realm every player lands in.
func PublicDefaultRealm() RealmID { return RealmID{Kind: PublicDefault} }

// NamedRealm returns the ID of the realm called name.
func NamedRealm(name RealmName) RealmID { return RealmID{Kind: Named, Name: name} }

// TemporaryRealm returns the ID of the realm behind inv.
func TemporaryRealm(inv InvitationID) RealmID {
	return RealmID{Kind: Temporary, Invitation: inv}
}

func (r RealmID) IsPublicDefault() bool { return r.Kind == PublicDefault }

func (r RealmID) String() string {
	switch r.Kind {
	case Named:
		return "named/" + string(r.Name)
	case Temporary:
		return "temporary/" + r.Invitation.Code()
	default:
		return "public/default"
	}
}

// ParseRealmID parses "public/default", "named/NAME" or
// "temporary/CODE".
func ParseRealmID(text string) (RealmID, error) {
	kind, rest, found := strings.Cut(text, "/")
	if !found {
		return RealmID{}, invalid("realm ID", text, "missing '/'")
	}
	switch kind {
	case "public":
		if rest != "default" {
			return RealmID{}, invalid("realm ID", text, "unknown public realm")
		}
		return PublicDefaultRealm(), nil
	case "named":
		name, err := ParseRealmName(rest)
		if err != nil {
			return RealmID{}, err
		}
		return NamedRealm(name), nil
	case "temporary":
		inv, err := ParseInvitationID(rest)
		if err != nil {
			return RealmID{}, err
		}
		return TemporaryRealm(inv), nil
	}
	return RealmID{}, invalid("realm ID", text, "unknown realm kind")
}

func (r RealmID) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *RealmID) UnmarshalText(text []byte) (err error) {
	*r, err = ParseRealmID(string(text))
	return err
}

// Encode writes the kind tag followed by the kind's payload.
func (r RealmID) Encode(e *wire.Encoder) {
	e.Uvarint(uint64(r.Kind))
	switch r.Kind {
	case Named:
		r.Name.Encode(e)
	case Temporary:
		r.Invitation.Encode(e)
	}
}

func DecodeRealmID(d *wire.Decoder, field string) RealmID {
	switch RealmKind(realmKindNames.decode(d, field+".kind")) {
	case Named:
		return NamedRealm(DecodeRealmName(d, field+".name"))
	case Temporary:
		return TemporaryRealm(DecodeInvitationID(d, field+".invitation"))
	}
	return PublicDefaultRealm()
}
