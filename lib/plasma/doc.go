// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package plasma defines the messages exchanged between game servers
// and the Plasma backend, and their binary encoding.
//
// The message set is closed. [Message] is a sealed interface
// implemented only by the types in this package, one per [Kind].
// Consumers that must handle every kind implement [Handler] and call
// [Dispatch]; adding a kind adds a Handler method, so every consumer
// fails to compile until it handles the new kind. Adding or changing a
// kind is a breaking change to the dialect and requires a new
// [VersionTag].
//
// Encoded messages do not carry their version. The transport sends
// the tag beside the payload, and [Decode] refuses any tag other than
// [Version] before reading a byte of the payload:
//
//	data, err := plasma.Encode(heartbeat)
//	...
//	message, err := plasma.Decode(plasma.Version, data)
//
// Decode is total: any input yields either a message or an error
// wrapping one of the lib/wire DecodeError kinds. A message that
// decodes also re-encodes, and Decode(Version, Encode(m)) equals m for
// every m that passes [Validate].
//
// Messages are plain values. Validation happens at construction
// through [Validated], which checks field domains, bounded text
// classification and timestamps against a clock with a skew
// tolerance. [Encode] repeats the structural part of those checks
// (everything but the clock) so an invalid message never reaches the
// wire.
package plasma
