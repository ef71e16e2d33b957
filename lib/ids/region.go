// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ids

import "github.com/bureau-foundation/plasma/lib/wire"

// RegionID is a coarse geographic region used for server selection.
type RegionID uint8

const (
	Africa RegionID = iota
	Asia
	Europe
	NorthAmerica
	Oceania
	SouthAmerica
)

// DefaultRegion is assumed when a visitor's region is unknown.
const DefaultRegion = NorthAmerica

var regionNames = enumNames{"Africa", "Asia", "Europe", "NorthAmerica", "Oceania", "SouthAmerica"}

// Regions lists every region in tag order.
var Regions = []RegionID{Africa, Asia, Europe, NorthAmerica, Oceania, SouthAmerica}

// regionDistance[from][to] is a rough latency rank: 0 for the same
// region, 3 for the far side of the world. It is not symmetric; each
// row reflects the routes visitors in that region actually get.
var regionDistance = [6][6]uint8{
	Africa:       {0, 2, 1, 2, 3, 3},
	Asia:         {2, 0, 2, 2, 1, 3},
	Europe:       {1, 2, 0, 2, 3, 3},
	NorthAmerica: {3, 3, 2, 0, 2, 1},
	Oceania:      {3, 1, 2, 2, 0, 3},
	SouthAmerica: {3, 2, 2, 1, 2, 0},
}

// Distance ranks how far a visitor in r is from a server in other.
// Lower is closer.
func (r RegionID) Distance(other RegionID) int {
	if !regionNames.valid(uint8(r)) || !regionNames.valid(uint8(other)) {
		return 3
	}
	return int(regionDistance[r][other])
}

// Closest returns the candidate nearest to r, preferring earlier
// candidates on ties. It reports false for an empty list.
func (r RegionID) Closest(candidates []RegionID) (RegionID, bool) {
	if len(candidates) == 0 {
		return 0, false
	}
	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if r.Distance(candidate) < r.Distance(best) {
			best = candidate
		}
	}
	return best, true
}

func (r RegionID) String() string { return regionNames.name(uint8(r)) }

func ParseRegionID(text string) (RegionID, error) {
	tag, err := regionNames.parse("region", text)
	return RegionID(tag), err
}

func (r RegionID) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *RegionID) UnmarshalText(text []byte) (err error) {
	*r, err = ParseRegionID(string(text))
	return err
}

func (r RegionID) Encode(e *wire.Encoder) { e.Uvarint(uint64(r)) }

func DecodeRegionID(d *wire.Decoder, field string) RegionID {
	return RegionID(regionNames.decode(d, field))
}
