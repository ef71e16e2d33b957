// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cardinality estimates the number of distinct keys in a
// stream using HyperLogLog.
//
// An [Estimator] accumulates observations and is safe for concurrent
// use. A [Snapshot] is an immutable copy of its registers: it can be
// estimated, merged with other snapshots, and encoded for transport.
// Merging takes the register-wise maximum, so it is commutative,
// associative and idempotent, and a merged snapshot estimates the
// size of the union of the observed sets. Counts of disjoint
// populations cannot be recovered by subtraction; an estimate is
// approximate, never exact.
//
// Precision is fixed at 12 bits (4096 registers, 6 bits each),
// giving a standard error of about 1.6%. Small cardinalities use
// linear counting over empty registers, which is near exact below a
// few thousand keys.
//
// Keys are hashed with keyed BLAKE3 under a fixed domain key, so
// snapshots from different processes are compatible and can be
// merged. The estimator never retains keys.
//
// Window boundaries belong to the caller: a reporting loop calls
// [Estimator.Reset] at the end of each interval and ships the
// returned snapshot.
package cardinality
