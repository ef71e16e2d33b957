// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package envelope frames one encoded plasma message for transport.
//
// An envelope is a deterministic CBOR map with integer keys:
//
//	1: protocol version tag
//	2: message kind (text name)
//	3: compression tag (0 none, 1 lz4, 2 zstd)
//	4: uncompressed payload size
//	5: keyed BLAKE3 checksum of the uncompressed payload
//	6: payload bytes
//
// [Seal] validates and encodes a message, compresses it and computes
// the checksum. [Open] reverses the steps, and checks the version tag
// before anything else: an envelope from another protocol version is
// rejected without its payload being looked at, even when the rest of
// the map would not parse.
//
// The kind is carried twice, once in the envelope and once as the
// first field of the payload. [Open] fails with [ErrKindMismatch] when
// they disagree, so routing on the envelope kind is safe.
package envelope
