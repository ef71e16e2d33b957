// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cardinality

import (
	"encoding/base64"
	"fmt"
	"math"
	"math/bits"

	"github.com/bureau-foundation/plasma/lib/wire"
)

const (
	// Precision is the number of hash bits that select a register.
	Precision = 12

	registerCount = 1 << Precision

	// maxRank is the largest register value: the position of the
	// first set bit in the remaining 52 hash bits, plus one.
	maxRank = 64 - Precision + 1

	registerBits = 6
)

// Snapshot is a copy of an estimator's registers. The zero value is
// the empty set. Snapshots are values: Merge returns a new snapshot
// and never modifies its operands.
type Snapshot struct {
	registers [registerCount]uint8
}

// observe records a hash. Callers synchronize.
func (s *Snapshot) observe(hash uint64) {
	index := hash >> (64 - Precision)
	// The guard bit caps the rank at maxRank when the remaining bits
	// are all zero.
	rank := uint8(bits.LeadingZeros64(hash<<Precision|1<<(Precision-1))) + 1
	if rank > s.registers[index] {
		s.registers[index] = rank
	}
}

// mergeFrom raises each register to other's value where larger.
func (s *Snapshot) mergeFrom(other *Snapshot) {
	for i, value := range other.registers {
		if value > s.registers[i] {
			s.registers[i] = value
		}
	}
}

// Merge returns the snapshot of the union of s and other.
func (s Snapshot) Merge(other Snapshot) Snapshot {
	s.mergeFrom(&other)
	return s
}

// IsEmpty reports whether nothing has been observed.
func (s Snapshot) IsEmpty() bool {
	return s == Snapshot{}
}

// Estimate returns the approximate number of distinct keys observed.
func (s Snapshot) Estimate() uint64 {
	const m = float64(registerCount)
	alpha := 0.7213 / (1 + 1.079/m)

	sum := 0.0
	zeros := 0
	for _, value := range s.registers {
		sum += math.Ldexp(1, -int(value))
		if value == 0 {
			zeros++
		}
	}
	estimate := alpha * m * m / sum
	if estimate <= 2.5*m && zeros > 0 {
		estimate = m * math.Log(m/float64(zeros))
	}
	return uint64(math.Round(estimate))
}

// Wire forms. Sparse lists the non-zero registers as (gap, value)
// pairs; dense packs all registers at 6 bits each.
const (
	formSparse = 0
	formDense  = 1
	formCount  = 2

	// A sparse pair takes two or three bytes; past this many non-zero
	// registers the dense form is no larger.
	sparseLimit = registerCount * registerBits / 8 / 3
)

// Encode writes the precision, the form tag and the registers in
// whichever form is smaller.
func (s Snapshot) Encode(e *wire.Encoder) {
	e.Uint8(Precision)
	nonZero := 0
	for _, value := range s.registers {
		if value != 0 {
			nonZero++
		}
	}
	if nonZero < sparseLimit {
		e.Uvarint(formSparse)
		e.Uvarint(uint64(nonZero))
		next := 0
		for i, value := range s.registers {
			if value == 0 {
				continue
			}
			e.Uvarint(uint64(i - next))
			e.Uint8(value)
			next = i + 1
		}
		return
	}
	e.Uvarint(formDense)
	e.PackBits(registerBits, s.registers[:])
}

// DecodeSnapshot reads a Snapshot written by Encode. A precision
// other than 12, a register index past the end, or a register value
// above the largest possible rank is UnknownVariant.
func DecodeSnapshot(d *wire.Decoder, field string) Snapshot {
	var s Snapshot
	precision := d.Uint8(field + ".precision")
	if d.Err() != nil {
		return s
	}
	if precision != Precision {
		d.Failf(wire.UnknownVariant, field+".precision", "precision %d, want %d", precision, Precision)
		return s
	}
	switch d.Tag(field+".form", formCount) {
	case formSparse:
		count := d.Count(field+".registers", registerCount, 2)
		next := uint64(0)
		for range count {
			gap := d.Uvarint(field + ".gap")
			value := d.Uint8(field + ".rank")
			if d.Err() != nil {
				return Snapshot{}
			}
			index := next + gap
			if gap >= registerCount || index >= registerCount {
				d.Failf(wire.UnknownVariant, field+".gap", "register index %d", index)
				return Snapshot{}
			}
			if value == 0 || value > maxRank {
				d.Failf(wire.UnknownVariant, field+".rank", "rank %d", value)
				return Snapshot{}
			}
			s.registers[index] = value
			next = index + 1
		}
	case formDense:
		d.UnpackBits(field+".registers", registerBits, s.registers[:])
		for _, value := range s.registers {
			if value > maxRank {
				d.Failf(wire.UnknownVariant, field+".registers", "rank %d", value)
				return Snapshot{}
			}
		}
	}
	if d.Err() != nil {
		return Snapshot{}
	}
	return s
}

// MarshalText returns the base64 of the wire form, so snapshots can
// ride in JSON and YAML.
func (s Snapshot) MarshalText() ([]byte, error) {
	encoder := wire.NewEncoder(64)
	s.Encode(encoder)
	out := make([]byte, base64.StdEncoding.EncodedLen(encoder.Len()))
	base64.StdEncoding.Encode(out, encoder.Bytes())
	return out, nil
}

func (s *Snapshot) UnmarshalText(text []byte) error {
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(raw, text)
	if err != nil {
		return fmt.Errorf("cardinality: snapshot text: %w", err)
	}
	decoder := wire.NewDecoder(raw[:n])
	decoded := DecodeSnapshot(decoder, "snapshot")
	if err := decoder.Finish(); err != nil {
		return err
	}
	*s = decoded
	return nil
}
