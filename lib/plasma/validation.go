// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plasma

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/bureau-foundation/plasma/lib/clock"
	"github.com/bureau-foundation/plasma/lib/entityid"
	"github.com/bureau-foundation/plasma/lib/names"
)

// DefaultSkew is how far in the future a timestamp may lie before
// validation rejects it.
const DefaultSkew = 30 * time.Second

// Constraints parameterize validation. With a nil Clock, timestamps
// are checked only for range, not against the current time.
type Constraints struct {
	Clock clock.Clock
	Skew  time.Duration
}

// DefaultConstraints checks timestamps against the wall clock with
// DefaultSkew.
func DefaultConstraints() Constraints {
	return Constraints{Clock: clock.Real(), Skew: DefaultSkew}
}

// ErrValidation is wrapped by every *ValidationError.
var ErrValidation = errors.New("plasma: invalid message")

// ValidationError reports the first field of a message that failed
// validation.
type ValidationError struct {
	Kind   Kind
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("plasma: invalid %s: %s: %s", e.Kind, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validate checks m against constraints and returns a
// *ValidationError for the first problem found.
func Validate(constraints Constraints, m Message) error {
	if m == nil {
		return errors.New("plasma: nil message")
	}
	v := &validator{kind: m.Kind()}
	if constraints.Clock != nil {
		v.now = MillisOf(constraints.Clock.Now())
		v.skew = Millis(max(constraints.Skew, 0) / time.Millisecond)
		v.timed = true
	}
	m.validate(v)
	if v.err != nil {
		return v.err
	}
	return nil
}

// Validated returns m if it passes Validate, for use at construction:
//
//	heartbeat, err := plasma.Validated(constraints, plasma.Heartbeat{...})
func Validated[M Message](constraints Constraints, m M) (M, error) {
	if err := Validate(constraints, m); err != nil {
		var zero M
		return zero, err
	}
	return m, nil
}

// validator accumulates the first failure. Field names are relative
// to the message, for example "realms[3].realm".
type validator struct {
	kind  Kind
	now   Millis
	skew  Millis
	timed bool
	err   *ValidationError
}

func (v *validator) fail(field string, format string, args ...any) {
	if v.err != nil {
		return
	}
	v.err = &ValidationError{Kind: v.kind, Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (v *validator) check(field string, err error) {
	if err != nil {
		v.fail(field, "%v", err)
	}
}

func (v *validator) require(field string, ok bool, reason string) {
	if !ok {
		v.fail(field, "%s", reason)
	}
}

// timestamp checks a required time at which something happened. It
// may not lie further in the future than the skew allows.
func (v *validator) timestamp(field string, at Millis) {
	switch {
	case at == 0:
		v.fail(field, "missing timestamp")
	case at > MaxMillis:
		v.fail(field, "timestamp %d out of range", at)
	case v.timed && at > v.now+v.skew:
		v.fail(field, "timestamp %s is %s in the future", at, time.Duration(at-v.now)*time.Millisecond)
	}
}

// deadline checks an optional time that is expected to lie in the
// future, such as an expiry.
func (v *validator) deadline(field string, at Millis) {
	if at > MaxMillis {
		v.fail(field, "timestamp %d out of range", at)
	}
}

// unit checks a fraction in [0, 1]. NaN fails.
func (v *validator) unit(field string, value float32) {
	if !(value >= 0 && value <= 1) {
		v.fail(field, "%g outside [0, 1]", value)
	}
}

func (v *validator) entity(field string, id entityid.ID) {
	if id.IsZero() {
		v.fail(field, "zero identifier")
	}
}

// text checks required bounded text: non-empty, classified, within
// limit.
func (v *validator) text(field string, t names.Text, limit names.Limit) {
	if t.String() == "" {
		v.fail(field, "empty")
		return
	}
	v.check(field, t.Check(limit))
}

// optionalText checks bounded text that may be absent (the zero Text).
func (v *validator) optionalText(field string, t names.Text, limit names.Limit) {
	if t.IsZero() {
		return
	}
	v.check(field, t.Check(limit))
}

// bounded checks plain machine-generated text against a byte capacity.
func (v *validator) bounded(field string, s string, capacity int) {
	switch {
	case len(s) > capacity:
		v.fail(field, "%d bytes, capacity %d", len(s), capacity)
	case !utf8.ValidString(s):
		v.fail(field, "not valid UTF-8")
	}
}

// structural validates m without a clock. Encode and Decode apply it
// so that only well-formed messages cross the wire.
func structural(m Message) error {
	return Validate(Constraints{}, m)
}
