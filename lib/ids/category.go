// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ids

import "github.com/bureau-foundation/plasma/lib/wire"

// UserAgentID classifies the client software a visitor uses.
type UserAgentID uint8

const (
	ChromeOS UserAgentID = iota
	Desktop
	DesktopChrome
	DesktopFirefox
	DesktopSafari
	Mobile
	Spider
	Tablet
)

var userAgentNames = enumNames{
	"ChromeOS", "Desktop", "DesktopChrome", "DesktopFirefox", "DesktopSafari", "Mobile", "Spider", "Tablet",
}

func (u UserAgentID) String() string { return userAgentNames.name(uint8(u)) }

// IsDesktop reports whether u is one of the desktop variants.
func (u UserAgentID) IsDesktop() bool {
	return u == Desktop || u == DesktopChrome || u == DesktopFirefox || u == DesktopSafari
}

func ParseUserAgentID(text string) (UserAgentID, error) {
	tag, err := userAgentNames.parse("user agent", text)
	return UserAgentID(tag), err
}

func (u UserAgentID) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (u *UserAgentID) UnmarshalText(text []byte) (err error) {
	*u, err = ParseUserAgentID(string(text))
	return err
}

func (u UserAgentID) Encode(e *wire.Encoder) { e.Uvarint(uint64(u)) }

func DecodeUserAgentID(d *wire.Decoder, field string) UserAgentID {
	return UserAgentID(userAgentNames.decode(d, field))
}

// LifecycleID separates first-time visitors from returning ones.
type LifecycleID uint8

const (
	New LifecycleID = iota
	Renewed
)

var lifecycleNames = enumNames{"New", "Renewed"}

func (l LifecycleID) String() string { return lifecycleNames.name(uint8(l)) }

func ParseLifecycleID(text string) (LifecycleID, error) {
	tag, err := lifecycleNames.parse("lifecycle", text)
	return LifecycleID(tag), err
}

func (l LifecycleID) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *LifecycleID) UnmarshalText(text []byte) (err error) {
	*l, err = ParseLifecycleID(string(text))
	return err
}

func (l LifecycleID) Encode(e *wire.Encoder) { e.Uvarint(uint64(l)) }

func DecodeLifecycleID(d *wire.Decoder, field string) LifecycleID {
	return LifecycleID(lifecycleNames.decode(d, field))
}

// PeriodID selects a leaderboard or reporting window.
type PeriodID uint8

const (
	AllTime PeriodID = iota
	Daily
	Weekly
)

var periodNames = enumNames{"AllTime", "Daily", "Weekly"}

func (p PeriodID) String() string { return periodNames.name(uint8(p)) }

func ParsePeriodID(text string) (PeriodID, error) {
	tag, err := periodNames.parse("period", text)
	return PeriodID(tag), err
}

func (p PeriodID) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *PeriodID) UnmarshalText(text []byte) (err error) {
	*p, err = ParsePeriodID(string(text))
	return err
}

func (p PeriodID) Encode(e *wire.Encoder) { e.Uvarint(uint64(p)) }

func DecodePeriodID(d *wire.Decoder, field string) PeriodID {
	return PeriodID(periodNames.decode(d, field))
}
