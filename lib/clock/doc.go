// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable wall-clock abstraction for
// testability.
//
// Production code accepts a Clock interface parameter instead of
// calling time.Now directly. In production, Real() provides the
// standard library behavior. In tests, Fake() provides a clock that
// moves only when told to, in either direction.
//
// # Wiring Pattern
//
// Add a Clock field to structs that read time:
//
//	type Generator struct {
//	    clock clock.Clock
//	    // ...
//	}
//
// In production:
//
//	g := entityid.NewGenerator(clock.Real())
//
// In tests:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	g := entityid.NewGenerator(c)
//	c.Advance(-5 * time.Second) // simulate an NTP step backward
package clock
