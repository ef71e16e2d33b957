// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the shared CBOR configuration.
//
// Plasma messages themselves use the compact binary format in
// lib/wire. CBOR is used around them: the transport envelope
// (lib/envelope) and canonical forms that get hashed, such as a
// moderation ruleset's fingerprint. Both need the same logical value
// to produce the same bytes, so the encoder uses Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//	err = codec.UnmarshalStrict(data, &value)
//
// # Struct Tag Rules
//
//   - `cbor` tag: the type is only ever CBOR. Envelope fields use
//     integer keys (`cbor:"1,keyasint"`) to keep frames small.
//   - `json` tag: the type is serialized as both JSON and CBOR;
//     fxamacker/cbor reads `json` tags when `cbor` tags are absent.
//
// Never use both `cbor` and `json` tags on the same field.
package codec
