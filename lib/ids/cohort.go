// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ids

import (
	"strconv"

	"github.com/bureau-foundation/plasma/lib/wire"
)

// CohortID assigns visitors to experiment groups 1 through 4. Lower
// cohorts are larger: their weights are 8, 4, 2 and 1 out of 15.
type CohortID uint8

const (
	MinCohort CohortID = 1
	MaxCohort CohortID = 4
)

func (c CohortID) Valid() bool { return c >= MinCohort && c <= MaxCohort }

// Weight is the relative share of visitors assigned to c.
func (c CohortID) Weight() int {
	if !c.Valid() {
		return 0
	}
	return 1 << int(MaxCohort-c)
}

// PickCohort maps a uniformly distributed value (a hash of a visitor
// ID, say) to a cohort in proportion to the weights.
func PickCohort(uniform uint64) CohortID {
	total := uint64(0)
	for c := MinCohort; c <= MaxCohort; c++ {
		total += uint64(c.Weight())
	}
	point := uniform % total
	for c := MinCohort; c < MaxCohort; c++ {
		weight := uint64(c.Weight())
		if point < weight {
			return c
		}
		point -= weight
	}
	return MaxCohort
}

// CohortOf assigns visitor a cohort. The assignment is stable: the
// same visitor always lands in the same cohort.
func CohortOf(visitor VisitorID) CohortID {
	// splitmix64 finalizer; sequential visitor IDs spread uniformly.
	x := uint64(visitor)
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return PickCohort(x)
}

func (c CohortID) String() string { return strconv.Itoa(int(c)) }

func ParseCohortID(text string) (CohortID, error) {
	value, err := strconv.ParseUint(text, 10, 8)
	if err != nil || !CohortID(value).Valid() {
		return 0, invalid("cohort", text, "want 1 to 4")
	}
	return CohortID(value), nil
}

func (c CohortID) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *CohortID) UnmarshalText(text []byte) (err error) {
	*c, err = ParseCohortID(string(text))
	return err
}

func (c CohortID) Encode(e *wire.Encoder) { e.Uint8(uint8(c)) }

func DecodeCohortID(d *wire.Decoder, field string) CohortID {
	cohort := CohortID(d.Uint8(field))
	if d.Err() == nil && !cohort.Valid() {
		d.Failf(wire.UnknownVariant, field, "cohort %d", cohort)
		return 0
	}
	return cohort
}
