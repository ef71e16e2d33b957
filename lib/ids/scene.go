// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ids

import (
	"strconv"

	"github.com/bureau-foundation/plasma/lib/wire"
)

// TierNumber selects a difficulty or progression tier, displayed as a
// letter: 1 is "A", 26 is "Z".
type TierNumber uint8

// MaxTier is the highest tier that has a letter.
const MaxTier TierNumber = 26

// Valid reports whether t is in 1..26.
func (t TierNumber) Valid() bool { return t >= 1 && t <= MaxTier }

// Letter returns the display letter. Out-of-range values clamp to
// 'A' or 'Z'.
func (t TierNumber) Letter() byte {
	switch {
	case t < 1:
		return 'A'
	case t > MaxTier:
		return 'Z'
	}
	return 'A' + byte(t-1)
}

func (t TierNumber) String() string { return string(t.Letter()) }

// InstanceNumber distinguishes parallel copies of one scene.
type InstanceNumber uint8

// SceneID locates a scene within a realm. Tier is zero for realms
// without tiers. Text form is the optional tier letter followed by
// the decimal instance: "A0", "C3", "0".
type SceneID struct {
	Tier     TierNumber
	Instance InstanceNumber
}

func (s SceneID) String() string {
	instance := strconv.Itoa(int(s.Instance))
	if s.Tier == 0 {
		return instance
	}
	return s.Tier.String() + instance
}

// ParseSceneID parses the text form. A bare tier letter means
// instance 0.
func ParseSceneID(text string) (SceneID, error) {
	if text == "" {
		return SceneID{}, invalid("scene ID", text, "empty")
	}
	var scene SceneID
	rest := text
	if first := text[0]; first >= 'A' && first <= 'Z' {
		scene.Tier = TierNumber(first-'A') + 1
		rest = text[1:]
	}
	if rest == "" {
		return scene, nil
	}
	instance, err := strconv.ParseUint(rest, 10, 8)
	if err != nil {
		return SceneID{}, invalid("scene ID", text, "instance is not a number in 0..255")
	}
	scene.Instance = InstanceNumber(instance)
	return scene, nil
}

func (s SceneID) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *SceneID) UnmarshalText(text []byte) (err error) {
	*s, err = ParseSceneID(string(text))
	return err
}

// Encode writes the tier (0 for none) and instance as one byte each.
func (s SceneID) Encode(e *wire.Encoder) {
	e.Uint8(uint8(s.Tier))
	e.Uint8(uint8(s.Instance))
}

// DecodeSceneID reads a SceneID. A tier above 26 is UnknownVariant.
func DecodeSceneID(d *wire.Decoder, field string) SceneID {
	tier := TierNumber(d.Uint8(field + ".tier"))
	if d.Err() == nil && tier > MaxTier {
		d.Failf(wire.UnknownVariant, field+".tier", "tier %d", tier)
		return SceneID{}
	}
	instance := InstanceNumber(d.Uint8(field + ".instance"))
	return SceneID{Tier: tier, Instance: instance}
}
