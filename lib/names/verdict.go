// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package names

import "fmt"

// Verdict is the outcome of classifying one piece of text.
type Verdict uint8

const (
	// Pending marks text that has not been classified. It is the zero
	// value and is never valid on the wire.
	Pending Verdict = iota
	Clean
	Profane
	ContainsPII
	TooWide

	verdictCount
)

var verdictNames = [verdictCount]string{"pending", "clean", "profane", "contains_pii", "too_wide"}

func (v Verdict) String() string {
	if v < verdictCount {
		return verdictNames[v]
	}
	return fmt.Sprintf("Verdict(%d)", uint8(v))
}

// Valid reports whether v is one of the defined verdicts, including
// Pending.
func (v Verdict) Valid() bool { return v < verdictCount }

// Acceptable reports whether text with this verdict may be shown to
// other players as is.
func (v Verdict) Acceptable() bool { return v == Clean }

// ParseVerdict parses the lower-case name returned by String.
func ParseVerdict(text string) (Verdict, error) {
	for i, name := range verdictNames {
		if name == text {
			return Verdict(i), nil
		}
	}
	return Pending, fmt.Errorf("names: unknown verdict %q", text)
}

func (v Verdict) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("names: cannot marshal %s", v)
	}
	return []byte(v.String()), nil
}

func (v *Verdict) UnmarshalText(text []byte) (err error) {
	*v, err = ParseVerdict(string(text))
	return err
}
