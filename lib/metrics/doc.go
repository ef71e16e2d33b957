// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package metrics defines the accumulators game servers fill in
// between analytics reports, and the [Engine] aggregate that carries
// them.
//
// Every accumulator is a small value type with a Push method for
// recording samples and an Add method that combines two accumulators
// covering disjoint intervals or servers. Counters saturate at the
// maximum uint32 instead of wrapping. Summarize reduces an
// accumulator to the figures shown on dashboards.
//
//   - [Discrete]: a count.
//   - [Extrema]: sample count, minimum and maximum of integer samples.
//   - [ContinuousExtrema]: count, minimum, maximum, sum and sum of
//     squares of real samples, giving average and standard deviation.
//   - [Ratio]: how many of the samples met a condition.
//   - [Histogram]: unit-width buckets plus underflow and overflow.
//
// Distinct counts (visitors) are cardinality.Snapshot values, merged
// by register maximum rather than added.
package metrics
