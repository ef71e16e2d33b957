// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package names

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bureau-foundation/plasma/lib/wire"
)

// Classifier assigns a Verdict to text. Implementations must be pure:
// the same text and width always produce the same verdict, and the
// empty string is Clean. maxWidth of zero means no width limit.
type Classifier interface {
	ClassifyWithin(text string, maxWidth int) Verdict
}

var (
	// ErrUnclassified reports a Text whose verdict is still Pending
	// where a classified one is required.
	ErrUnclassified = errors.New("names: text is not classified")

	// ErrTooLong reports a Text longer than the field's byte limit.
	ErrTooLong = errors.New("names: text exceeds limit")

	// ErrInvalidVerdict reports a verdict outside the defined set.
	ErrInvalidVerdict = errors.New("names: invalid verdict")
)

// Text is bounded, classified text. The zero value is the empty,
// unclassified text and marks an absent optional field.
type Text struct {
	value     string
	verdict   Verdict
	truncated bool
}

// New bounds raw to limit and classifies it. Invalid UTF-8 sequences
// are replaced with U+FFFD before truncation. A nil classifier leaves
// the verdict Pending; such text must be classified (see Classify)
// before it can be encoded in a message.
func New(limit Limit, raw string, classifier Classifier) Text {
	value, truncated := limit.Truncate(strings.ToValidUTF8(raw, "\uFFFD"))
	text := Text{value: value, truncated: truncated}
	if classifier != nil {
		text.verdict = classifier.ClassifyWithin(value, limit.Width)
	}
	return text
}

// Carried rebuilds text that was classified elsewhere. It does not
// reclassify; it only checks the value fits limit and the verdict is
// a classified one.
func Carried(limit Limit, value string, verdict Verdict, truncated bool) (Text, error) {
	text := Text{value: value, verdict: verdict, truncated: truncated}
	if err := text.Check(limit); err != nil {
		return Text{}, err
	}
	return text, nil
}

func (t Text) String() string     { return t.value }
func (t Text) Verdict() Verdict   { return t.verdict }
func (t Text) Truncated() bool    { return t.truncated }
func (t Text) IsZero() bool       { return t == Text{} }
func (t Text) IsClassified() bool { return t.verdict != Pending }

// Check reports whether t may be encoded in a field bounded by limit.
func (t Text) Check(limit Limit) error {
	switch {
	case !t.verdict.Valid():
		return fmt.Errorf("%w: %d", ErrInvalidVerdict, t.verdict)
	case t.verdict == Pending:
		return ErrUnclassified
	case len(t.value) > limit.Bytes:
		return fmt.Errorf("%w: %d bytes, %s allows %d", ErrTooLong, len(t.value), limit.Name, limit.Bytes)
	case !utf8.ValidString(t.value):
		return fmt.Errorf("names: %s is not valid UTF-8", limit.Name)
	}
	return nil
}

// Classify returns t classified by classifier if it is still Pending,
// re-bounding the value to limit first. Classified text is returned
// unchanged.
func (t Text) Classify(limit Limit, classifier Classifier) Text {
	if t.verdict != Pending || classifier == nil {
		return t
	}
	classified := New(limit, t.value, classifier)
	classified.truncated = classified.truncated || t.truncated
	return classified
}

// Wire header layout: verdict in bits 0-2, truncated in bit 3, bits
// 4-7 reserved and zero.
const (
	headerVerdictMask = 0x07
	headerTruncated   = 0x08
	headerReserved    = 0xf0
)

// Encode writes the header byte and the length-prefixed value. Text
// should have passed Check; a Pending verdict is written as zero,
// which decoders reject.
func (t Text) Encode(e *wire.Encoder) {
	header := uint8(t.verdict) & headerVerdictMask
	if t.truncated {
		header |= headerTruncated
	}
	e.Uint8(header)
	e.String(t.value)
}

// Decode reads a Text written by Encode into a field bounded by
// limit. A value longer than limit.Bytes is CapacityExceeded; a
// Pending or undefined verdict, or reserved header bits, are
// UnknownVariant.
func Decode(d *wire.Decoder, field string, limit Limit) Text {
	start := d.Offset()
	header := d.Uint8(field + ".header")
	if d.Err() != nil {
		return Text{}
	}
	verdict := Verdict(header & headerVerdictMask)
	switch {
	case header&headerReserved != 0:
		d.Failf(wire.UnknownVariant, field+".header", "reserved bits set in %#02x", header)
		return Text{}
	case verdict == Pending || !verdict.Valid():
		d.Failf(wire.UnknownVariant, field+".verdict", "verdict %d at offset %d", verdict, start)
		return Text{}
	}
	value := d.String(field, limit.Bytes)
	if d.Err() != nil {
		return Text{}
	}
	return Text{value: value, verdict: verdict, truncated: header&headerTruncated != 0}
}

type textJSON struct {
	Text      string  `json:"text"`
	Verdict   Verdict `json:"verdict"`
	Truncated bool    `json:"truncated,omitempty"`
}

// MarshalJSON writes {"text", "verdict", "truncated"}.
func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(textJSON{Text: t.value, Verdict: t.verdict, Truncated: t.truncated})
}

// UnmarshalJSON accepts the object form, or a bare string which
// becomes Pending text for a producer to classify.
func (t *Text) UnmarshalJSON(data []byte) error {
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		*t = Text{value: bare}
		return nil
	}
	var object textJSON
	if err := json.Unmarshal(data, &object); err != nil {
		return fmt.Errorf("names: text must be a string or an object: %w", err)
	}
	*t = Text{value: object.Text, verdict: object.Verdict, truncated: object.Truncated}
	return nil
}
