// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ids defines the identity and navigation types carried in
// Plasma messages: servers, players, realms, scenes, arenas,
// invitations, regions, cohorts, user agents and reporting periods,
// plus the opaque visitor, user and token numbers.
//
// Every type has a canonical text form (String, a matching Parse
// function, and encoding.TextMarshaler/TextUnmarshaler so JSON and
// YAML use the same form) and a binary form written with
// [wire.Encoder] and read with a Decode function that takes the
// field name for error context.
//
// Types whose zero value is not a legal identifier (ServerNumber,
// PlayerID, the token types) reject zero both when parsing text and
// when decoding: the wire decoder reports it as
// [wire.UnknownVariant]. Use the IsZero method to test for "absent"
// in optional fields.
package ids
