// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/plasma/lib/codec"
	"github.com/bureau-foundation/plasma/lib/plasma"
)

// DefaultMaxPayload is the payload bound used when Options leaves
// MaxPayload unset.
const DefaultMaxPayload = 1 << 20

var (
	// ErrMalformed reports bytes that are not an envelope: bad CBOR,
	// unknown map keys, or a compression tag outside the table.
	ErrMalformed = errors.New("envelope: malformed")

	// ErrTooLarge reports a payload above the configured bound, on
	// either side.
	ErrTooLarge = errors.New("envelope: payload too large")

	// ErrChecksumMismatch reports a payload whose keyed checksum does
	// not match the one carried in the envelope.
	ErrChecksumMismatch = errors.New("envelope: checksum mismatch")

	// ErrKindMismatch reports an envelope whose kind disagrees with the
	// kind encoded in its payload.
	ErrKindMismatch = errors.New("envelope: kind mismatch")
)

// Checksum is the keyed BLAKE3 digest of an uncompressed payload.
type Checksum [32]byte

func (c Checksum) String() string { return hex.EncodeToString(c[:]) }

// checksumDomainKey is the ASCII domain name zero-padded to 32 bytes.
var checksumDomainKey = [32]byte{
	'p', 'l', 'a', 's', 'm', 'a', '.', 'e', 'n', 'v', 'e', 'l', 'o', 'p', 'e', '.',
	'c', 'h', 'e', 'c', 'k', 's', 'u', 'm', 0, 0, 0, 0, 0, 0, 0, 0,
}

// Sum computes the envelope checksum of payload.
func Sum(payload []byte) Checksum {
	hasher, err := blake3.NewKeyed(checksumDomainKey[:])
	if err != nil {
		panic("envelope: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(payload)
	var sum Checksum
	copy(sum[:], hasher.Sum(nil))
	return sum
}

// Envelope is the decoded frame. Payload is as carried on the wire,
// still compressed.
type Envelope struct {
	Version     plasma.VersionTag `cbor:"1,keyasint"`
	Kind        plasma.Kind       `cbor:"2,keyasint"`
	Compression Compression       `cbor:"3,keyasint"`
	Size        uint32            `cbor:"4,keyasint"`
	Checksum    Checksum          `cbor:"5,keyasint"`
	Payload     []byte            `cbor:"6,keyasint"`
}

// versionProbe reads only the version key, ignoring the rest.
type versionProbe struct {
	Version plasma.VersionTag `cbor:"1,keyasint"`
}

// Options controls Seal and Open. The zero value seals without
// compression and opens with DefaultMaxPayload.
type Options struct {
	Compression Compression
	// MaxPayload bounds the uncompressed payload. Zero means
	// DefaultMaxPayload; values above MaxPayloadCeiling are clamped.
	MaxPayload int
	Logger     *slog.Logger
}

func (o Options) maxPayload() int {
	switch {
	case o.MaxPayload <= 0:
		return DefaultMaxPayload
	case o.MaxPayload > MaxPayloadCeiling:
		return MaxPayloadCeiling
	}
	return o.MaxPayload
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Seal encodes m under plasma.Version and wraps it. m must pass
// structural validation; callers that want clock checks run
// plasma.Validate first.
func Seal(m plasma.Message, options Options) ([]byte, error) {
	payload, err := plasma.Encode(m)
	if err != nil {
		return nil, err
	}
	limit := options.maxPayload()
	if len(payload) > limit {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(payload), limit)
	}

	algorithm := options.Compression
	if algorithm == CompressionAuto {
		algorithm = selectCompression(payload)
	}
	body, err := compress(payload, algorithm)
	if errors.Is(err, errIncompressible) {
		options.logger().Debug("payload incompressible, sending uncompressed",
			"kind", m.Kind(), "compression", algorithm, "size", len(payload))
		body, algorithm = payload, CompressionNone
	} else if err != nil {
		return nil, err
	}

	data, err := codec.Marshal(Envelope{
		Version:     plasma.Version,
		Kind:        m.Kind(),
		Compression: algorithm,
		Size:        uint32(len(payload)),
		Checksum:    Sum(payload),
		Payload:     body,
	})
	if err != nil {
		return nil, fmt.Errorf("envelope: marshal: %w", err)
	}
	options.logger().Debug("sealed envelope",
		"kind", m.Kind(), "compression", algorithm, "size", len(payload), "wire", len(data))
	return data, nil
}

// Open unwraps data and decodes its message with default options.
func Open(data []byte) (plasma.Message, error) {
	return OpenWith(data, Options{})
}

// OpenWith unwraps data and decodes its message.
func OpenWith(data []byte, options Options) (plasma.Message, error) {
	envelope, err := Unwrap(data, options)
	if err != nil {
		return nil, err
	}
	return envelope.Message()
}

// Unwrap checks the version tag, then parses the rest of the frame and
// checks its declared sizes. The payload is not decompressed.
func Unwrap(data []byte, options Options) (Envelope, error) {
	limit := options.maxPayload()
	// Wire payloads are never larger than their uncompressed form plus
	// framing, so anything far past the limit is rejected unparsed.
	if len(data) > 2*limit {
		return Envelope{}, fmt.Errorf("%w: %d byte frame, limit %d", ErrTooLarge, len(data), limit)
	}

	var probe versionProbe
	if err := codec.Unmarshal(data, &probe); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := plasma.CheckVersion(probe.Version); err != nil {
		return Envelope{}, err
	}

	var envelope Envelope
	if err := codec.UnmarshalStrict(data, &envelope); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	switch envelope.Compression {
	case CompressionNone, CompressionLZ4, CompressionZstd:
	default:
		return Envelope{}, fmt.Errorf("%w: compression tag %d", ErrMalformed, uint8(envelope.Compression))
	}
	if int64(envelope.Size) > int64(limit) {
		return Envelope{}, fmt.Errorf("%w: declared %d bytes, limit %d", ErrTooLarge, envelope.Size, limit)
	}
	if len(envelope.Payload) > limit {
		return Envelope{}, fmt.Errorf("%w: carried %d bytes, limit %d", ErrTooLarge, len(envelope.Payload), limit)
	}
	return envelope, nil
}

// Message decompresses the payload, verifies the checksum, decodes it
// and checks the decoded kind against the envelope's.
func (e Envelope) Message() (plasma.Message, error) {
	payload, err := decompress(e.Payload, e.Compression, int(e.Size))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if Sum(payload) != e.Checksum {
		return nil, ErrChecksumMismatch
	}
	m, err := plasma.Decode(e.Version, payload)
	if err != nil {
		return nil, err
	}
	if m.Kind() != e.Kind {
		return nil, fmt.Errorf("%w: envelope says %s, payload is %s", ErrKindMismatch, e.Kind, m.Kind())
	}
	return m, nil
}
