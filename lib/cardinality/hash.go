// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cardinality

import (
	"encoding/binary"
	"sync"

	"github.com/zeebo/blake3"
)

// hashDomainKey is the ASCII domain name zero-padded to 32 bytes.
// Changing it makes new snapshots incompatible with old ones.
var hashDomainKey = [32]byte{
	'p', 'l', 'a', 's', 'm', 'a', '.', 'c', 'a', 'r', 'd', 'i', 'n', 'a', 'l', 'i',
	't', 'y', '.', 'k', 'e', 'y', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

var hasherPool = sync.Pool{
	New: func() any {
		hasher, err := blake3.NewKeyed(hashDomainKey[:])
		if err != nil {
			panic("cardinality: BLAKE3 keyed hash initialization failed: " + err.Error())
		}
		return hasher
	},
}

// hashKey returns 64 uniformly distributed bits derived from key.
func hashKey(key []byte) uint64 {
	hasher := hasherPool.Get().(*blake3.Hasher)
	hasher.Reset()
	hasher.Write(key)
	var sum [32]byte
	hasher.Sum(sum[:0])
	hasherPool.Put(hasher)
	return binary.LittleEndian.Uint64(sum[:8])
}
