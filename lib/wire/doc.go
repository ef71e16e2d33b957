// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire provides the binary encoding primitives shared by every
// Plasma message type.
//
// The format is a plain concatenation of fields in schema order with
// no field tags and no self-description:
//
//   - integers are LEB128 varints (signed values zig-zag encoded)
//   - floats are fixed-width little-endian IEEE 754 bits
//   - strings and byte strings carry a uvarint length prefix
//   - groups of booleans are bit-packed into one byte ([Encoder.Flags])
//   - runs of small values are bit-packed at a fixed width
//     ([Encoder.PackBits])
//   - sequences carry a uvarint element count and have a declared
//     capacity ([Bounded])
//
// Schema evolution happens by bumping the protocol version tag, not by
// tolerating unknown fields, so the decoder is strict: any byte
// sequence decodes to a value or fails with a [*DecodeError] whose
// Kind is one of Truncated, UnknownVariant, LengthOverflow,
// CapacityExceeded or TrailingBytes. The decoder never panics on
// input, and it never allocates more than the input could describe.
//
// Decoding uses sticky errors:
//
//	d := wire.NewDecoder(data)
//	count := d.Uint32("metrics.visits")
//	name := d.String("server.name", 28)
//	if err := d.Finish(); err != nil {
//	    return err
//	}
package wire
