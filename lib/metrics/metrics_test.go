// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/bureau-foundation/plasma/lib/cardinality"
	"github.com/bureau-foundation/plasma/lib/ids"
	"github.com/bureau-foundation/plasma/lib/testutil"
	"github.com/bureau-foundation/plasma/lib/wire"
)

func TestDiscreteSaturates(t *testing.T) {
	d := Discrete{Total: math.MaxUint32 - 1}
	d.Increment()
	d.Increment()
	if d.Total != math.MaxUint32 {
		t.Errorf("Total = %d, want saturation at MaxUint32", d.Total)
	}
	if got := d.Add(Discrete{Total: 10}).Total; got != math.MaxUint32 {
		t.Errorf("Add = %d, want MaxUint32", got)
	}
}

func TestExtrema(t *testing.T) {
	var x Extrema
	for _, sample := range []uint32{5, 2, 9} {
		x.Push(sample)
	}
	if x != (Extrema{Count: 3, Min: 2, Max: 9}) {
		t.Errorf("Push = %+v", x)
	}
	if got := (Extrema{}).Add(x); got != x {
		t.Errorf("empty.Add(x) = %+v, want %+v", got, x)
	}
	other := Extrema{Count: 1, Min: 20, Max: 20}
	if got := x.Add(other); got != (Extrema{Count: 4, Min: 2, Max: 20}) {
		t.Errorf("Add = %+v", got)
	}
}

func TestContinuousExtrema(t *testing.T) {
	var c ContinuousExtrema
	for _, sample := range []float32{2, 4, 4, 4, 5, 5, 7, 9} {
		c.Push(sample)
	}
	if c.Count != 8 || c.Min != 2 || c.Max != 9 {
		t.Fatalf("Push = %+v", c)
	}
	if got := c.Average(); got != 5 {
		t.Errorf("Average = %v, want 5", got)
	}
	if got := c.StandardDeviation(); math.Abs(got-2) > 1e-9 {
		t.Errorf("StandardDeviation = %v, want 2", got)
	}

	c.Push(float32(math.NaN()))
	if c.Count != 8 {
		t.Error("NaN sample was recorded")
	}
	c.Push(float32(math.Inf(1)))
	c.Push(float32(math.Inf(-1)))
	if c.Count != 8 || c.Min != 2 || c.Max != 9 {
		t.Errorf("infinite samples were recorded: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate after infinite samples: %v", err)
	}

	var empty ContinuousExtrema
	if empty.Average() != 0 || empty.StandardDeviation() != 0 {
		t.Error("empty accumulator should summarize to zero")
	}
	if got := empty.Add(c); got != c {
		t.Errorf("empty.Add(c) = %+v", got)
	}

	var constant ContinuousExtrema
	for range 3 {
		constant.Push(0.1)
	}
	if got := constant.StandardDeviation(); got != 0 && got > 1e-6 {
		t.Errorf("StandardDeviation of constant samples = %v", got)
	}
}

func TestRatio(t *testing.T) {
	var r Ratio
	for _, condition := range []bool{true, false, true, true} {
		r.Push(condition)
	}
	if r != (Ratio{Total: 4, Count: 3}) {
		t.Fatalf("Push = %+v", r)
	}
	if got := r.Percent(); got != 75 {
		t.Errorf("Percent = %v, want 75", got)
	}
	if got := (Ratio{}).Percent(); got != 0 {
		t.Errorf("empty Percent = %v, want 0", got)
	}
	full := Ratio{Total: math.MaxUint32 - 1, Count: 1}
	sum := full.Add(Ratio{Total: 5, Count: 5})
	if sum.Total != math.MaxUint32 || sum.Count > sum.Total {
		t.Errorf("saturating Add = %+v", sum)
	}
}

func TestHistogram(t *testing.T) {
	h := NewHistogram(4)
	for _, sample := range []float32{-1, 0, 0.5, 1, 2.5, 3.9, 4, 4.5, 100} {
		h.Push(sample)
	}
	if want := []uint32{2, 1, 1, 2}; !reflect.DeepEqual(h.Buckets, want) {
		t.Errorf("Buckets = %v, want %v", h.Buckets, want)
	}
	if h.Underflow != 1 || h.Overflow != 2 {
		t.Errorf("Underflow = %d, Overflow = %d, want 1 and 2", h.Underflow, h.Overflow)
	}

	summary := h.Summarize()
	total := summary.Overflow + summary.Underflow
	for _, percent := range summary.Buckets {
		total += percent
	}
	if math.Abs(total-100) > 1e-9 {
		t.Errorf("summary percentages sum to %v", total)
	}
}

func TestHistogramMedian(t *testing.T) {
	h := NewHistogram(10)
	if h.Median() != 0 {
		t.Error("empty histogram median should be 0")
	}
	for range 10 {
		h.Push(3.5)
	}
	// All samples in bucket 3: half (5 of 10) is reached halfway in.
	if got := h.Median(); got != 3.5 {
		t.Errorf("Median = %v, want 3.5", got)
	}
}

func TestHistogramAdd(t *testing.T) {
	a := NewHistogram(3)
	b := NewHistogram(5)
	a.Push(1)
	b.Push(1)
	b.Push(4)
	sum := a.Add(b)
	if want := []uint32{0, 2, 0, 0, 1}; !reflect.DeepEqual(sum.Buckets, want) {
		t.Errorf("Add = %v, want %v", sum.Buckets, want)
	}
	if !reflect.DeepEqual(a.Buckets, []uint32{0, 1, 0}) {
		t.Error("Add modified its receiver")
	}
}

func TestHistogramWithoutBuckets(t *testing.T) {
	var h Histogram
	h.Push(0)
	h.Push(-2)
	if h.Overflow != 1 || h.Underflow != 1 {
		t.Errorf("zero histogram = %+v", h)
	}
}

func TestHistogramNoBucketsIsNil(t *testing.T) {
	var fromJSON Histogram
	if err := json.Unmarshal([]byte(`{"buckets": [], "overflow": 2}`), &fromJSON); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if fromJSON.Buckets != nil || fromJSON.Overflow != 2 {
		t.Errorf("Unmarshal = %#v, want nil buckets and overflow 2", fromJSON)
	}
	if err := fromJSON.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	if sum := (Histogram{}).Add(Histogram{Overflow: 1}); sum.Buckets != nil {
		t.Errorf("Add of bucketless histograms = %#v, want nil buckets", sum)
	}

	if err := (Histogram{Buckets: []uint32{}}).Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("Validate of empty bucket slice = %v, want ErrInvalid", err)
	}

	encoder := wire.NewEncoder(8)
	fromJSON.Encode(encoder)
	decoder := wire.NewDecoder(encoder.Bytes())
	decoded := DecodeHistogram(decoder, "histogram")
	if err := decoder.Finish(); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, fromJSON) {
		t.Errorf("round trip = %#v, want %#v", decoded, fromJSON)
	}
}

func sampleEngine(visitorsFrom, visitorsTo int) Engine {
	engine := NewEngine()
	engine.AbuseReports.Increment()
	engine.ActivesPerIP.Push(1)
	engine.CPU.Push(0.25)
	engine.CPU.Push(0.75)
	engine.RTT.Push(42)
	engine.Bounce.Push(true)
	engine.New.Push(false)
	engine.MinutesPerVisit.Push(12.5)
	engine.MinutesPerVisitHistogram.Push(12.5)
	engine.Visits.AddCount(3)
	var visitors cardinality.Estimator
	for _, key := range testutil.Keys("visitor", visitorsFrom, visitorsTo) {
		visitors.ObserveString(key)
	}
	engine.Visitors = visitors.Snapshot()
	return engine
}

func TestEngineAdd(t *testing.T) {
	sum := sampleEngine(1, 100).Add(sampleEngine(51, 150))
	if sum.AbuseReports.Total != 2 || sum.Visits.Total != 6 {
		t.Errorf("discrete fields = %d, %d", sum.AbuseReports.Total, sum.Visits.Total)
	}
	if sum.CPU.Count != 4 || sum.CPU.Min != 0.25 || sum.CPU.Max != 0.75 {
		t.Errorf("CPU = %+v", sum.CPU)
	}
	summary := sum.Summarize()
	if summary.Visitors < 140 || summary.Visitors > 160 {
		t.Errorf("Visitors = %d, want about 150", summary.Visitors)
	}
	if summary.Bounce.Percent != 100 {
		t.Errorf("Bounce = %v", summary.Bounce.Percent)
	}
	if _, err := json.Marshal(summary); err != nil {
		t.Fatalf("Marshal summary: %v", err)
	}
}

func TestEngineWireRoundTrip(t *testing.T) {
	var fromJSON Engine
	if err := json.Unmarshal([]byte(`{"actives_per_ip": {"buckets": []}, "fps": {"count": 0}}`), &fromJSON); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	infinite := NewEngine()
	infinite.FPS.Push(float32(math.Inf(1)))
	infinite.FPS.Push(60)

	for name, engine := range map[string]Engine{
		"zero":     {},
		"empty":    NewEngine(),
		"filled":   sampleEngine(1, 2000),
		"json":     fromJSON,
		"infinite": infinite,
	} {
		t.Run(name, func(t *testing.T) {
			encoder := wire.NewEncoder(256)
			engine.Encode(encoder)
			if encoder.Len() < EngineMinSize {
				t.Errorf("encoded %d bytes, below EngineMinSize %d", encoder.Len(), EngineMinSize)
			}
			if err := engine.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			decoder := wire.NewDecoder(encoder.Bytes())
			decoded := DecodeEngine(decoder, "engine")
			if err := decoder.Finish(); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !reflect.DeepEqual(decoded, engine) {
				t.Errorf("round trip differs:\n got %+v\nwant %+v", decoded.Summarize(), engine.Summarize())
			}
		})
	}
}

func TestEngineZeroEncodesMinimum(t *testing.T) {
	encoder := wire.NewEncoder(64)
	Engine{}.Encode(encoder)
	if encoder.Len() != EngineMinSize {
		t.Errorf("zero engine encoded to %d bytes, want %d", encoder.Len(), EngineMinSize)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name   string
		encode func(*wire.Encoder)
		decode func(*wire.Decoder)
	}{
		{
			"ratio count above total",
			func(e *wire.Encoder) { e.Uvarint(1); e.Uvarint(2) },
			func(d *wire.Decoder) { DecodeRatio(d, "ratio") },
		},
		{
			"inverted extrema",
			func(e *wire.Encoder) { e.Uvarint(2); e.Uvarint(9); e.Uvarint(1) },
			func(d *wire.Decoder) { DecodeExtrema(d, "extrema") },
		},
		{
			"non-finite continuous",
			func(e *wire.Encoder) {
				e.Uvarint(1)
				e.Float32(0)
				e.Float32(1)
				e.Float64(math.Inf(1))
				e.Float64(0)
			},
			func(d *wire.Decoder) { DecodeContinuousExtrema(d, "cpu") },
		},
		{
			"filter kind",
			func(e *wire.Encoder) { e.Uvarint(9) },
			func(d *wire.Decoder) { DecodeFilter(d, "filter") },
		},
		{
			"filter cohort",
			func(e *wire.Encoder) { e.Uvarint(uint64(FilterCohort)); e.Uint8(7) },
			func(d *wire.Decoder) { DecodeFilter(d, "filter") },
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			encoder := wire.NewEncoder(16)
			test.encode(encoder)
			decoder := wire.NewDecoder(encoder.Bytes())
			test.decode(decoder)
			if !errors.Is(decoder.Err(), wire.ErrUnknownVariant) {
				t.Errorf("error = %v, want ErrUnknownVariant", decoder.Err())
			}
		})
	}

	over := wire.NewEncoder(8)
	over.Uvarint(MaxBuckets + 1)
	decoder := wire.NewDecoder(over.Bytes())
	DecodeHistogram(decoder, "histogram")
	if !errors.Is(decoder.Err(), wire.ErrCapacityExceeded) {
		t.Errorf("oversized histogram = %v, want ErrCapacityExceeded", decoder.Err())
	}
}

func TestFilter(t *testing.T) {
	filters := []Filter{
		AllVisitors(),
		ByCohort(2),
		ByLifecycle(ids.Renewed),
		ByRegion(ids.Europe),
		ByUserAgent(ids.Mobile),
	}
	for _, filter := range filters {
		parsed, err := ParseFilter(filter.String())
		if err != nil {
			t.Fatalf("ParseFilter(%q): %v", filter, err)
		}
		if parsed != filter {
			t.Errorf("ParseFilter(%q) = %+v", filter, parsed)
		}

		encoder := wire.NewEncoder(4)
		filter.Encode(encoder)
		decoder := wire.NewDecoder(encoder.Bytes())
		if got := DecodeFilter(decoder, "filter"); got != filter {
			t.Errorf("wire round trip = %+v, want %+v", got, filter)
		}
	}
	if got := ByRegion(ids.Europe).String(); got != "region/Europe" {
		t.Errorf("String() = %q", got)
	}
	for _, text := range []string{"", "region", "region/Mars", "planet/Earth", "cohort/9"} {
		if _, err := ParseFilter(text); err == nil {
			t.Errorf("ParseFilter(%q) succeeded", text)
		}
	}
}

func TestFilterValidate(t *testing.T) {
	for _, filter := range []Filter{AllVisitors(), ByCohort(1), ByLifecycle(ids.Renewed), ByRegion(ids.Africa), ByUserAgent(ids.Spider)} {
		if err := filter.Validate(); err != nil {
			t.Errorf("%s: Validate: %v", filter, err)
		}
	}
	for _, filter := range []Filter{
		{Kind: 9},
		ByCohort(0),
		ByRegion(ids.RegionID(6)),
		{Kind: FilterRegion, Region: ids.Asia, Cohort: 2},
		{Kind: FilterAll, UserAgent: ids.Tablet},
	} {
		if err := filter.Validate(); err == nil {
			t.Errorf("%+v: Validate accepted", filter)
		}
	}
}

func TestEngineValidate(t *testing.T) {
	if err := sampleEngine(1, 10).Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := (Engine{}).Validate(); err != nil {
		t.Fatalf("zero Engine: Validate: %v", err)
	}

	inverted := NewEngine()
	inverted.RTT = ContinuousExtrema{Count: 1, Min: 9, Max: 1}
	if err := inverted.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("inverted rtt: got %v, want ErrInvalid", err)
	}

	stray := NewEngine()
	stray.CPU.Total = 1
	if err := stray.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("statistics without samples: got %v, want ErrInvalid", err)
	}

	ratio := NewEngine()
	ratio.Toxicity = Ratio{Total: 1, Count: 2}
	if err := ratio.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("ratio: got %v, want ErrInvalid", err)
	}

	if err := (Extrema{Max: 3}).Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("extrema: got %v, want ErrInvalid", err)
	}

	emptied := NewEngine()
	emptied.ActivesPerIP = Histogram{Buckets: []uint32{}}
	if err := emptied.Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("empty bucket slice: got %v, want ErrInvalid", err)
	}
}
