// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plasma

import (
	"time"

	"github.com/bureau-foundation/plasma/lib/names"
	"github.com/bureau-foundation/plasma/lib/wire"
)

// Message is one protocol message. It is implemented only by the
// message types in this package.
type Message interface {
	Kind() Kind

	validate(v *validator)
	encode(e *wire.Encoder)
	classify(classifier names.Classifier) Message
	dispatch(h Handler) error
}

// Millis is a Unix timestamp in milliseconds. Zero means unset.
type Millis uint64

// MaxMillis is the largest timestamp the dialect accepts, a little
// after the year 10889.
const MaxMillis Millis = 1<<48 - 1

// MillisOf converts t, clamping times before 1970 to zero.
func MillisOf(t time.Time) Millis {
	milliseconds := t.UnixMilli()
	if milliseconds < 0 {
		return 0
	}
	return Millis(milliseconds)
}

func (m Millis) IsZero() bool { return m == 0 }

// Time returns m as a UTC time.
func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(min(m, MaxMillis))).UTC()
}

func (m Millis) String() string {
	return m.Time().Format(time.RFC3339Nano)
}

func (m Millis) Encode(e *wire.Encoder) { e.Uvarint(uint64(m)) }

func decodeMillis(d *wire.Decoder, field string) Millis {
	return Millis(d.Uvarint(field))
}

// ClassifyPending returns m with every Pending text field classified
// by classifier. Text that is already classified keeps its verdict. A
// producer that built text without a classifier calls this before
// Validated or Encode.
func ClassifyPending(m Message, classifier names.Classifier) Message {
	if m == nil || classifier == nil {
		return m
	}
	return m.classify(classifier)
}
