// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package entityid issues compact, time-ordered identifiers for
// protocol entities: server instances, player sessions, moderation
// queries.
//
// An [ID] is 128 bits: a 48-bit Unix millisecond timestamp followed by
// 80 bits of randomness. IDs from one process are strictly increasing.
// IDs from different processes are unique with overwhelming
// probability without coordination, because each process draws its
// own random component whenever the millisecond changes.
//
// The time component is monotonic even when the wall clock is not. If
// the clock reads earlier than the most recent ID (an NTP step, a VM
// migration), the generator issues the successor of the most recent
// ID instead of a smaller or duplicate value. The regression is
// counted and logged at debug level; it is never an error for
// callers.
//
// Most code uses the process-wide generator:
//
//	session := entityid.New()
//
// Tests construct their own with an injected clock:
//
//	c := clock.Fake(start)
//	g := entityid.NewGenerator(c)
//
// The textual form is 26 characters of Crockford base32, which sorts
// the same way as the binary form. On the wire an ID is 16 raw bytes.
package entityid
