// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"iter"
	"math/rand/v2"
)

// Keys returns the keys "prefix-from" through "prefix-to" inclusive.
//
//	testutil.Keys("visitor", 1, 500) // "visitor-1", ..., "visitor-500"
func Keys(prefix string, from, to int) []string {
	if to < from {
		return nil
	}
	keys := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		keys = append(keys, fmt.Sprintf("%s-%d", prefix, i))
	}
	return keys
}

// Truncations yields every proper prefix of data, shortest first.
func Truncations(data []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for n := range len(data) {
			if !yield(data[:n:n]) {
				return
			}
		}
	}
}

// Mutations yields count corrupted copies of data. Each copy has one
// to three random edits: a flipped bit, an overwritten byte, an
// inserted byte or a deleted byte. The same seed yields the same
// sequence.
func Mutations(data []byte, seed uint64, count int) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		random := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		for range count {
			mutated := append([]byte(nil), data...)
			edits := 1 + random.IntN(3)
			for range edits {
				mutated = mutate(random, mutated)
			}
			if !yield(mutated) {
				return
			}
		}
	}
}

func mutate(random *rand.Rand, data []byte) []byte {
	if len(data) == 0 {
		return []byte{byte(random.UintN(256))}
	}
	position := random.IntN(len(data))
	switch random.IntN(4) {
	case 0:
		data[position] ^= 1 << random.UintN(8)
	case 1:
		data[position] = byte(random.UintN(256))
	case 2:
		data = append(data[:position], append([]byte{byte(random.UintN(256))}, data[position:]...)...)
	default:
		data = append(data[:position], data[position+1:]...)
	}
	return data
}
