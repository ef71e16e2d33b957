// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [Keys] generates distinct, reproducible keys for estimator tests.
// [Truncations] and [Mutations] derive malformed inputs from a valid
// encoding so decoders can be checked for totality: every input must
// produce a value or an error, never a panic. Mutations are seeded,
// so a failure reproduces exactly.
//
// [RequireNoError] and [RequireErrorIs] call t.Fatalf on failure
// rather than returning, since test setup failures are not
// recoverable.
//
// This package has no dependencies on other packages in this module.
package testutil
