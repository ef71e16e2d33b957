// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cardinality

import (
	"encoding/binary"
	"sync"
)

// Estimator counts distinct keys. The zero value is ready to use.
type Estimator struct {
	mu       sync.Mutex
	snapshot Snapshot
}

// Observe records key. Observing the same key again has no effect.
func (e *Estimator) Observe(key []byte) {
	hash := hashKey(key)
	e.mu.Lock()
	e.snapshot.observe(hash)
	e.mu.Unlock()
}

// ObserveString records key.
func (e *Estimator) ObserveString(key string) {
	e.Observe([]byte(key))
}

// ObserveUint64 records a numeric key such as a visitor ID, hashed as
// its 8-byte little-endian form.
func (e *Estimator) ObserveUint64(key uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], key)
	e.Observe(buf[:])
}

// Estimate returns the approximate number of distinct keys observed
// since creation or the last Reset.
func (e *Estimator) Estimate() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot.Estimate()
}

// Snapshot returns a copy of the current registers.
func (e *Estimator) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot
}

// Merge folds other into the estimator.
func (e *Estimator) Merge(other Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.snapshot.mergeFrom(&other)
}

// Reset clears the estimator and returns what it held.
func (e *Estimator) Reset() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	previous := e.snapshot
	e.snapshot = Snapshot{}
	return previous
}
