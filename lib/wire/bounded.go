// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/json"
	"fmt"
	"iter"
)

// Capacity declares the maximum length of a Bounded sequence at the
// type level, so two fields with different limits are different types
// and the limit travels with the schema rather than with each value.
type Capacity interface {
	Limit() int
}

// Standard capacities.
type (
	Cap4  struct{}
	Cap8  struct{}
	Cap16 struct{}
	Cap32 struct{}
	Cap64 struct{}
)

func (Cap4) Limit() int  { return 4 }
func (Cap8) Limit() int  { return 8 }
func (Cap16) Limit() int { return 16 }
func (Cap32) Limit() int { return 32 }
func (Cap64) Limit() int { return 64 }

// Bounded is a sequence of at most C.Limit() elements. Storage is
// allocated once, at full capacity, when the first element is added;
// it never grows. The zero value is an empty sequence.
//
// Exceeding the capacity fails at construction (NewBounded, Append)
// with ErrCapacityExceeded, before any encode is attempted.
type Bounded[T any, C Capacity] struct {
	items []T
}

// NewBounded returns a Bounded holding items, or an error wrapping
// ErrCapacityExceeded if there are too many.
func NewBounded[T any, C Capacity](items ...T) (Bounded[T, C], error) {
	var bounded Bounded[T, C]
	if len(items) > bounded.Cap() {
		return bounded, fmt.Errorf("%w: %d elements, capacity %d", ErrCapacityExceeded, len(items), bounded.Cap())
	}
	for _, item := range items {
		bounded.push(item)
	}
	return bounded, nil
}

// MustBounded is NewBounded for statically sized literals. It panics
// if items exceed the capacity.
func MustBounded[T any, C Capacity](items ...T) Bounded[T, C] {
	bounded, err := NewBounded[T, C](items...)
	if err != nil {
		panic(err)
	}
	return bounded
}

func (b *Bounded[T, C]) push(item T) {
	if b.items == nil {
		b.items = make([]T, 0, b.Cap())
	}
	b.items = append(b.items, item)
}

// Cap returns the declared capacity.
func (b Bounded[T, C]) Cap() int {
	var capacity C
	return capacity.Limit()
}

// Len returns the number of elements.
func (b Bounded[T, C]) Len() int {
	return len(b.items)
}

// At returns element i. It panics if i is out of range, like a slice
// index.
func (b Bounded[T, C]) At(i int) T {
	return b.items[i]
}

// All iterates over index and element pairs.
func (b Bounded[T, C]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range b.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Items returns a copy of the elements.
func (b Bounded[T, C]) Items() []T {
	if b.items == nil {
		return nil
	}
	return append([]T(nil), b.items...)
}

// Append adds item, or returns an error wrapping ErrCapacityExceeded
// if the sequence is full.
func (b *Bounded[T, C]) Append(item T) error {
	if len(b.items) >= b.Cap() {
		return fmt.Errorf("%w: capacity %d", ErrCapacityExceeded, b.Cap())
	}
	b.push(item)
	return nil
}

// Encode writes the element count followed by each element.
func (b Bounded[T, C]) Encode(e *Encoder, element func(*Encoder, T)) {
	e.Uvarint(uint64(len(b.items)))
	for _, item := range b.items {
		element(e, item)
	}
}

// DecodeBounded reads a sequence written by Bounded.Encode. The count
// is checked against the capacity and against the remaining input
// (each element occupies at least minElementSize bytes) before any
// storage is allocated.
func DecodeBounded[T any, C Capacity](d *Decoder, field string, minElementSize int, element func(*Decoder) T) Bounded[T, C] {
	var bounded Bounded[T, C]
	count := d.Count(field, bounded.Cap(), minElementSize)
	for range count {
		item := element(d)
		if d.Err() != nil {
			return Bounded[T, C]{}
		}
		bounded.push(item)
	}
	return bounded
}

// MarshalJSON encodes the elements as a JSON array.
func (b Bounded[T, C]) MarshalJSON() ([]byte, error) {
	if b.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(b.items)
}

// UnmarshalJSON decodes a JSON array, enforcing the capacity.
func (b *Bounded[T, C]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	decoded, err := NewBounded[T, C](items...)
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}
