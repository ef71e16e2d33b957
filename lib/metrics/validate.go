// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"errors"
	"fmt"
)

// ErrInvalid reports an accumulator whose fields could not have been
// produced by its own methods, and so would not survive the wire form.
var ErrInvalid = errors.New("metrics: invalid accumulator")

func (x Extrema) Validate() error {
	switch {
	case x.Count == 0 && (x.Min != 0 || x.Max != 0):
		return fmt.Errorf("%w: bounds without samples", ErrInvalid)
	case x.Min > x.Max:
		return fmt.Errorf("%w: min %d above max %d", ErrInvalid, x.Min, x.Max)
	}
	return nil
}

func (c ContinuousExtrema) Validate() error {
	switch {
	case c.Count == 0 && c != (ContinuousExtrema{}):
		return fmt.Errorf("%w: statistics without samples", ErrInvalid)
	case !c.finite():
		return fmt.Errorf("%w: non-finite statistics", ErrInvalid)
	case c.Min > c.Max:
		return fmt.Errorf("%w: min %g above max %g", ErrInvalid, c.Min, c.Max)
	}
	return nil
}

func (r Ratio) Validate() error {
	if r.Count > r.Total {
		return fmt.Errorf("%w: count %d above total %d", ErrInvalid, r.Count, r.Total)
	}
	return nil
}

func (h Histogram) Validate() error {
	switch {
	case len(h.Buckets) > MaxBuckets:
		return fmt.Errorf("%w: %d buckets, at most %d", ErrInvalid, len(h.Buckets), MaxBuckets)
	case h.Buckets != nil && len(h.Buckets) == 0:
		return fmt.Errorf("%w: empty bucket slice, want nil", ErrInvalid)
	}
	return nil
}

// Validate checks every accumulator and names the first bad field.
func (m Engine) Validate() error {
	checks := []struct {
		field string
		value interface{ Validate() error }
	}{
		{"actives_per_ip", m.ActivesPerIP},
		{"bandwidth_rx", m.BandwidthRx},
		{"bandwidth_tx", m.BandwidthTx},
		{"bounce", m.Bounce},
		{"concurrent", m.Concurrent},
		{"connections", m.Connections},
		{"cpu", m.CPU},
		{"fps", m.FPS},
		{"low_fps", m.LowFPS},
		{"minutes_per_visit", m.MinutesPerVisit},
		{"minutes_per_visit_histogram", m.MinutesPerVisitHistogram},
		{"new", m.New},
		{"ram", m.RAM},
		{"rtt", m.RTT},
		{"score", m.Score},
		{"teamed", m.Teamed},
		{"toxicity", m.Toxicity},
		{"tps", m.TPS},
		{"uptime", m.Uptime},
	}
	for _, check := range checks {
		if err := check.value.Validate(); err != nil {
			return fmt.Errorf("%s: %w", check.field, err)
		}
	}
	return nil
}
