// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts the wall clock for testability. Production code
// injects Real(); tests inject Fake() with deterministic time control.
//
// Every production function in this module that reads the current
// time (identifier issuance, timestamp skew validation) accepts a
// Clock instead of calling time.Now directly.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// UnixMilli returns the clock's current time as Unix milliseconds,
// clamped to zero for readings before the epoch.
func UnixMilli(c Clock) uint64 {
	millis := c.Now().UnixMilli()
	if millis < 0 {
		return 0
	}
	return uint64(millis)
}
