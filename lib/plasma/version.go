// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plasma

import (
	"errors"
	"fmt"
)

// VersionTag names the protocol dialect an encoded message was written
// in. Both ends must agree exactly; there is no negotiation.
type VersionTag uint16

// Version is the dialect this package reads and writes.
const Version VersionTag = 1

// ErrUnsupportedVersion reports a payload tagged with a version this
// build does not speak. The payload must be discarded whole.
var ErrUnsupportedVersion = errors.New("plasma: unsupported protocol version")

// CheckVersion returns an error wrapping ErrUnsupportedVersion unless
// tag is Version.
func CheckVersion(tag VersionTag) error {
	if tag != Version {
		return fmt.Errorf("%w: got %d, want %d", ErrUnsupportedVersion, tag, Version)
	}
	return nil
}
