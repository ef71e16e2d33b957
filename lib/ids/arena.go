// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ids

import (
	"strings"

	"github.com/bureau-foundation/plasma/lib/wire"
)

// ArenaID locates one running scene: "public/default/A0".
type ArenaID struct {
	Realm RealmID
	Scene SceneID
}

func (a ArenaID) String() string {
	return a.Realm.String() + "/" + a.Scene.String()
}

// ParseArenaID splits at the last '/' into a realm and a scene.
func ParseArenaID(text string) (ArenaID, error) {
	cut := strings.LastIndexByte(text, '/')
	if cut < 0 {
		return ArenaID{}, invalid("arena ID", text, "missing '/'")
	}
	realm, err := ParseRealmID(text[:cut])
	if err != nil {
		return ArenaID{}, err
	}
	scene, err := ParseSceneID(text[cut+1:])
	if err != nil {
		return ArenaID{}, err
	}
	return ArenaID{Realm: realm, Scene: scene}, nil
}

func (a ArenaID) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *ArenaID) UnmarshalText(text []byte) (err error) {
	*a, err = ParseArenaID(string(text))
	return err
}

func (a ArenaID) Encode(e *wire.Encoder) {
	a.Realm.Encode(e)
	a.Scene.Encode(e)
}

func DecodeArenaID(d *wire.Decoder, field string) ArenaID {
	realm := DecodeRealmID(d, field+".realm")
	scene := DecodeSceneID(d, field+".scene")
	return ArenaID{Realm: realm, Scene: scene}
}
