// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bureau-foundation/plasma/lib/ids"
	"github.com/bureau-foundation/plasma/lib/wire"
)

// FilterKind selects the dimension an Engine is broken down by.
type FilterKind uint8

const (
	// FilterAll is the unfiltered total.
	FilterAll FilterKind = iota
	FilterCohort
	FilterLifecycle
	FilterRegion
	FilterUserAgent

	filterKindCount
)

var filterKindNames = [filterKindCount]string{"all", "cohort", "lifecycle", "region", "user_agent"}

func (k FilterKind) String() string {
	if k < filterKindCount {
		return filterKindNames[k]
	}
	return "FilterKind(" + strconv.Itoa(int(k)) + ")"
}

// Filter restricts metrics to one population. Only the field named by
// Kind is meaningful; the others are zero so Filter works as a map key.
type Filter struct {
	Kind      FilterKind
	Cohort    ids.CohortID
	Lifecycle ids.LifecycleID
	Region    ids.RegionID
	UserAgent ids.UserAgentID
}

func AllVisitors() Filter                  { return Filter{} }
func ByCohort(c ids.CohortID) Filter       { return Filter{Kind: FilterCohort, Cohort: c} }
func ByLifecycle(l ids.LifecycleID) Filter { return Filter{Kind: FilterLifecycle, Lifecycle: l} }
func ByRegion(r ids.RegionID) Filter       { return Filter{Kind: FilterRegion, Region: r} }
func ByUserAgent(u ids.UserAgentID) Filter { return Filter{Kind: FilterUserAgent, UserAgent: u} }

// String returns "all" or "kind/value", for example "region/Europe".
func (f Filter) String() string {
	switch f.Kind {
	case FilterCohort:
		return "cohort/" + f.Cohort.String()
	case FilterLifecycle:
		return "lifecycle/" + f.Lifecycle.String()
	case FilterRegion:
		return "region/" + f.Region.String()
	case FilterUserAgent:
		return "user_agent/" + f.UserAgent.String()
	}
	return "all"
}

// ParseFilter parses the form produced by String.
func ParseFilter(text string) (Filter, error) {
	if text == "all" {
		return AllVisitors(), nil
	}
	kind, value, found := strings.Cut(text, "/")
	if !found {
		return Filter{}, fmt.Errorf("metrics: filter %q: want \"all\" or \"kind/value\"", text)
	}
	switch kind {
	case "cohort":
		cohort, err := ids.ParseCohortID(value)
		return ByCohort(cohort), err
	case "lifecycle":
		lifecycle, err := ids.ParseLifecycleID(value)
		return ByLifecycle(lifecycle), err
	case "region":
		region, err := ids.ParseRegionID(value)
		return ByRegion(region), err
	case "user_agent":
		agent, err := ids.ParseUserAgentID(value)
		return ByUserAgent(agent), err
	}
	return Filter{}, fmt.Errorf("metrics: filter %q: unknown kind %q", text, kind)
}

func (f Filter) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Filter) UnmarshalText(text []byte) error {
	parsed, err := ParseFilter(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Validate reports whether f is a filter DecodeFilter would return:
// a known kind, a valid value for it, and zero in every other field.
func (f Filter) Validate() error {
	var canonical Filter
	switch f.Kind {
	case FilterAll:
		canonical = AllVisitors()
	case FilterCohort:
		if err := f.Cohort.Validate(); err != nil {
			return err
		}
		canonical = ByCohort(f.Cohort)
	case FilterLifecycle:
		if err := f.Lifecycle.Validate(); err != nil {
			return err
		}
		canonical = ByLifecycle(f.Lifecycle)
	case FilterRegion:
		if err := f.Region.Validate(); err != nil {
			return err
		}
		canonical = ByRegion(f.Region)
	case FilterUserAgent:
		if err := f.UserAgent.Validate(); err != nil {
			return err
		}
		canonical = ByUserAgent(f.UserAgent)
	default:
		return fmt.Errorf("metrics: unknown filter kind %d", f.Kind)
	}
	if f != canonical {
		return fmt.Errorf("metrics: filter %s sets fields outside its kind", f)
	}
	return nil
}

// Encode writes the kind tag followed by the selected value.
func (f Filter) Encode(e *wire.Encoder) {
	e.Uvarint(uint64(f.Kind))
	switch f.Kind {
	case FilterCohort:
		f.Cohort.Encode(e)
	case FilterLifecycle:
		f.Lifecycle.Encode(e)
	case FilterRegion:
		f.Region.Encode(e)
	case FilterUserAgent:
		f.UserAgent.Encode(e)
	}
}

func DecodeFilter(d *wire.Decoder, field string) Filter {
	switch FilterKind(d.Tag(field+".kind", uint64(filterKindCount))) {
	case FilterCohort:
		return ByCohort(ids.DecodeCohortID(d, field+".cohort"))
	case FilterLifecycle:
		return ByLifecycle(ids.DecodeLifecycleID(d, field+".lifecycle"))
	case FilterRegion:
		return ByRegion(ids.DecodeRegionID(d, field+".region"))
	case FilterUserAgent:
		return ByUserAgent(ids.DecodeUserAgentID(d, field+".user_agent"))
	}
	return AllVisitors()
}
