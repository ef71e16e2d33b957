// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/bureau-foundation/plasma/lib/wire"
)

// MaxBuckets bounds a Histogram's bucket count.
const MaxBuckets = 32

// Histogram counts samples in unit-width buckets [0,1), [1,2), ...
// Samples below zero count as underflow and samples above the bucket
// count as overflow; a sample exactly equal to the bucket count lands
// in the last bucket.
//
// A histogram without buckets has nil Buckets, never an empty slice;
// that is the form Decode and Add produce.
type Histogram struct {
	Buckets   []uint32 `json:"buckets"`
	Overflow  uint32   `json:"overflow"`
	Underflow uint32   `json:"underflow"`
}

// NewHistogram returns a histogram with n buckets. It panics if n is
// outside 1..MaxBuckets; bucket counts are fixed per metric.
func NewHistogram(n int) Histogram {
	if n < 1 || n > MaxBuckets {
		panic(fmt.Sprintf("metrics: histogram with %d buckets", n))
	}
	return Histogram{Buckets: make([]uint32, n)}
}

// Push records sample. NaN is ignored.
func (h *Histogram) Push(sample float32) {
	switch {
	case math.IsNaN(float64(sample)):
	case sample < 0:
		h.Underflow = saturatingAdd(h.Underflow, 1)
	case sample > float32(len(h.Buckets)) || len(h.Buckets) == 0:
		h.Overflow = saturatingAdd(h.Overflow, 1)
	default:
		bucket := min(int(sample), len(h.Buckets)-1)
		h.Buckets[bucket] = saturatingAdd(h.Buckets[bucket], 1)
	}
}

// Add combines two histograms. If the bucket counts differ, the
// result has the larger count.
func (h Histogram) Add(other Histogram) Histogram {
	result := Histogram{
		Overflow:  saturatingAdd(h.Overflow, other.Overflow),
		Underflow: saturatingAdd(h.Underflow, other.Underflow),
	}
	if n := max(len(h.Buckets), len(other.Buckets)); n > 0 {
		result.Buckets = make([]uint32, n)
	}
	copy(result.Buckets, h.Buckets)
	for i, count := range other.Buckets {
		result.Buckets[i] = saturatingAdd(result.Buckets[i], count)
	}
	return result
}

// Median estimates the median of the in-range samples by linear
// interpolation within the bucket that contains it. It returns 0
// with fewer than two samples in range.
func (h Histogram) Median() float64 {
	var sum uint64
	for _, count := range h.Buckets {
		sum += uint64(count)
	}
	half := sum / 2
	if half == 0 {
		return 0
	}
	var partial uint64
	for i, count := range h.Buckets {
		partial += uint64(count)
		if partial >= half {
			before := partial - uint64(count)
			return float64(i) + float64(half-before)/float64(count)
		}
	}
	return float64(len(h.Buckets))
}

type HistogramSummary struct {
	Buckets   []float64 `json:"buckets"`
	Overflow  float64   `json:"overflow"`
	Underflow float64   `json:"underflow"`
	Median    float64   `json:"median"`
}

// Summarize converts counts to percentages of all samples.
func (h Histogram) Summarize() HistogramSummary {
	total := uint64(h.Overflow) + uint64(h.Underflow)
	for _, count := range h.Buckets {
		total += uint64(count)
	}
	scale := 0.0
	if total > 0 {
		scale = 100 / float64(total)
	}
	summary := HistogramSummary{
		Buckets:   make([]float64, len(h.Buckets)),
		Overflow:  float64(h.Overflow) * scale,
		Underflow: float64(h.Underflow) * scale,
		Median:    h.Median(),
	}
	for i, count := range h.Buckets {
		summary.Buckets[i] = float64(count) * scale
	}
	return summary
}

// UnmarshalJSON accepts "buckets": [] and null alike as no buckets.
func (h *Histogram) UnmarshalJSON(data []byte) error {
	type plain Histogram
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if len(decoded.Buckets) == 0 {
		decoded.Buckets = nil
	}
	*h = Histogram(decoded)
	return nil
}

func (h Histogram) Encode(e *wire.Encoder) {
	e.Uvarint(uint64(len(h.Buckets)))
	for _, count := range h.Buckets {
		e.Uvarint(uint64(count))
	}
	e.Uvarint(uint64(h.Overflow))
	e.Uvarint(uint64(h.Underflow))
}

// DecodeHistogram reads a Histogram with at most MaxBuckets buckets.
func DecodeHistogram(d *wire.Decoder, field string) Histogram {
	n := d.Count(field+".buckets", MaxBuckets, 1)
	if d.Err() != nil {
		return Histogram{}
	}
	h := Histogram{}
	if n > 0 {
		h.Buckets = make([]uint32, n)
	}
	for i := range h.Buckets {
		h.Buckets[i] = d.Uint32(field + ".bucket")
	}
	h.Overflow = d.Uint32(field + ".overflow")
	h.Underflow = d.Uint32(field + ".underflow")
	if d.Err() != nil {
		return Histogram{}
	}
	return h
}
