// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"math"

	"github.com/bureau-foundation/plasma/lib/wire"
)

func saturatingAdd(a, b uint32) uint32 {
	if sum := a + b; sum >= a {
		return sum
	}
	return math.MaxUint32
}

// Discrete counts something exactly.
type Discrete struct {
	Total uint32 `json:"total"`
}

// Increment adds one.
func (d *Discrete) Increment() { d.AddCount(1) }

// AddCount adds amount, saturating.
func (d *Discrete) AddCount(amount uint32) { d.Total = saturatingAdd(d.Total, amount) }

func (d Discrete) Add(other Discrete) Discrete {
	return Discrete{Total: saturatingAdd(d.Total, other.Total)}
}

type DiscreteSummary struct {
	Total uint32 `json:"total"`
}

func (d Discrete) Summarize() DiscreteSummary { return DiscreteSummary{Total: d.Total} }

func (d Discrete) Encode(e *wire.Encoder) { e.Uvarint(uint64(d.Total)) }

func DecodeDiscrete(d *wire.Decoder, field string) Discrete {
	return Discrete{Total: d.Uint32(field)}
}

// Extrema tracks the range of integer samples.
type Extrema struct {
	Count uint32 `json:"count"`
	Min   uint32 `json:"min"`
	Max   uint32 `json:"max"`
}

// Push records sample. The first sample sets both bounds.
func (x *Extrema) Push(sample uint32) {
	switch {
	case x.Count == 0:
		x.Min, x.Max = sample, sample
	case x.Count == math.MaxUint32:
		return
	default:
		x.Min = min(x.Min, sample)
		x.Max = max(x.Max, sample)
	}
	x.Count++
}

func (x Extrema) Add(other Extrema) Extrema {
	switch {
	case x.Count == 0:
		return other
	case other.Count == 0:
		return x
	}
	return Extrema{
		Count: saturatingAdd(x.Count, other.Count),
		Min:   min(x.Min, other.Min),
		Max:   max(x.Max, other.Max),
	}
}

// Encode writes the count and, if non-zero, the bounds.
func (x Extrema) Encode(e *wire.Encoder) {
	e.Uvarint(uint64(x.Count))
	if x.Count == 0 {
		return
	}
	e.Uvarint(uint64(x.Min))
	e.Uvarint(uint64(x.Max))
}

func DecodeExtrema(d *wire.Decoder, field string) Extrema {
	x := Extrema{Count: d.Uint32(field + ".count")}
	if x.Count == 0 {
		return Extrema{}
	}
	x.Min = d.Uint32(field + ".min")
	x.Max = d.Uint32(field + ".max")
	if d.Err() == nil && x.Min > x.Max {
		d.Failf(wire.UnknownVariant, field, "min %d above max %d", x.Min, x.Max)
	}
	return x
}

// ContinuousExtrema tracks real-valued samples. Totals are float64
// because sums of many samples outgrow float32 precision.
type ContinuousExtrema struct {
	Count        uint32  `json:"count"`
	Min          float32 `json:"min"`
	Max          float32 `json:"max"`
	Total        float64 `json:"total"`
	SquaredTotal float64 `json:"squared_total"`
}

// Push records sample. NaN and infinite samples are ignored.
func (c *ContinuousExtrema) Push(sample float32) {
	value := float64(sample)
	if c.Count == math.MaxUint32 || math.IsNaN(value) || math.IsInf(value, 0) {
		return
	}
	if c.Count == 0 {
		c.Min, c.Max = sample, sample
	} else {
		c.Min = min(c.Min, sample)
		c.Max = max(c.Max, sample)
	}
	c.Total += value
	c.SquaredTotal += value * value
	c.Count++
}

// PushCount records an integer sample such as a queue length.
func (c *ContinuousExtrema) PushCount(sample int) { c.Push(float32(sample)) }

func (c ContinuousExtrema) Add(other ContinuousExtrema) ContinuousExtrema {
	switch {
	case c.Count == 0:
		return other
	case other.Count == 0:
		return c
	}
	return ContinuousExtrema{
		Count:        saturatingAdd(c.Count, other.Count),
		Min:          min(c.Min, other.Min),
		Max:          max(c.Max, other.Max),
		Total:        c.Total + other.Total,
		SquaredTotal: c.SquaredTotal + other.SquaredTotal,
	}
}

// Average returns the mean, or 0 with no samples.
func (c ContinuousExtrema) Average() float64 {
	return c.Total / float64(max(c.Count, 1))
}

// StandardDeviation returns the population standard deviation, or 0
// with no samples.
func (c ContinuousExtrema) StandardDeviation() float64 {
	n := float64(max(c.Count, 1))
	mean := c.Total / n
	variance := c.SquaredTotal/n - mean*mean
	if variance < 0 {
		// Rounding when all samples are equal.
		return 0
	}
	return math.Sqrt(variance)
}

type ContinuousSummary struct {
	Average           float64 `json:"average"`
	StandardDeviation float64 `json:"standard_deviation"`
	Min               float32 `json:"min"`
	Max               float32 `json:"max"`
}

func (c ContinuousExtrema) Summarize() ContinuousSummary {
	return ContinuousSummary{
		Average:           c.Average(),
		StandardDeviation: c.StandardDeviation(),
		Min:               c.Min,
		Max:               c.Max,
	}
}

// Encode writes the count and, if non-zero, the remaining fields.
func (c ContinuousExtrema) Encode(e *wire.Encoder) {
	e.Uvarint(uint64(c.Count))
	if c.Count == 0 {
		return
	}
	e.Float32(c.Min)
	e.Float32(c.Max)
	e.Float64(c.Total)
	e.Float64(c.SquaredTotal)
}

// DecodeContinuousExtrema reads a ContinuousExtrema. Non-finite
// values and min above max are UnknownVariant.
func DecodeContinuousExtrema(d *wire.Decoder, field string) ContinuousExtrema {
	c := ContinuousExtrema{Count: d.Uint32(field + ".count")}
	if c.Count == 0 {
		return ContinuousExtrema{}
	}
	c.Min = d.Float32(field + ".min")
	c.Max = d.Float32(field + ".max")
	c.Total = d.Float64(field + ".total")
	c.SquaredTotal = d.Float64(field + ".squared_total")
	if d.Err() != nil {
		return ContinuousExtrema{}
	}
	if !c.finite() || c.Min > c.Max {
		d.Fail(wire.UnknownVariant, field, "non-finite or inverted sample statistics")
		return ContinuousExtrema{}
	}
	return c
}

func (c ContinuousExtrema) finite() bool {
	for _, value := range []float64{float64(c.Min), float64(c.Max), c.Total, c.SquaredTotal} {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return false
		}
	}
	return true
}

// Ratio counts how many samples met a condition.
type Ratio struct {
	Total uint32 `json:"total"`
	Count uint32 `json:"count"`
}

// Push records one sample.
func (r *Ratio) Push(condition bool) {
	if r.Total == math.MaxUint32 {
		return
	}
	r.Total++
	if condition {
		r.Count++
	}
}

func (r Ratio) Add(other Ratio) Ratio {
	headroom := math.MaxUint32 - r.Total
	return Ratio{
		Total: r.Total + min(other.Total, headroom),
		Count: r.Count + min(other.Count, headroom),
	}
}

// Percent returns 100 * Count / Total, or 0 with no samples.
func (r Ratio) Percent() float64 {
	return float64(r.Count) / float64(max(r.Total, 1)) * 100
}

type RatioSummary struct {
	Percent float64 `json:"percent"`
	Total   uint32  `json:"total"`
}

func (r Ratio) Summarize() RatioSummary { return RatioSummary{Percent: r.Percent(), Total: r.Total} }

func (r Ratio) Encode(e *wire.Encoder) {
	e.Uvarint(uint64(r.Total))
	e.Uvarint(uint64(r.Count))
}

// DecodeRatio reads a Ratio. A count above the total is
// UnknownVariant.
func DecodeRatio(d *wire.Decoder, field string) Ratio {
	r := Ratio{Total: d.Uint32(field + ".total"), Count: d.Uint32(field + ".count")}
	if d.Err() == nil && r.Count > r.Total {
		d.Failf(wire.UnknownVariant, field, "count %d above total %d", r.Count, r.Total)
		return Ratio{}
	}
	return r
}
