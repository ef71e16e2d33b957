// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ids

import "strconv"

// Validate methods report whether a value built in code (rather than
// parsed or decoded) lies inside its type's domain. A value that
// passes Validate encodes to bytes its Decode function accepts.

func (id ServerID) Validate() error {
	if !serverKindNames.valid(uint8(id.Kind)) {
		return invalid("server ID", id.String(), "unknown kind")
	}
	if id.Number == 0 {
		return invalid("server ID", id.String(), "zero server number")
	}
	return nil
}

func (inv InvitationID) Validate() error {
	if inv.Server == 0 {
		return invalid("invitation", inv.Code(), "zero server number")
	}
	return nil
}

func (r RealmID) Validate() error {
	switch r.Kind {
	case PublicDefault:
		if r.Name != "" || !r.Invitation.IsZero() {
			return invalid("realm ID", r.String(), "public realm carries a name or invitation")
		}
	case Named:
		if _, err := ParseRealmName(string(r.Name)); err != nil {
			return err
		}
		if !r.Invitation.IsZero() {
			return invalid("realm ID", r.String(), "named realm carries an invitation")
		}
	case Temporary:
		if r.Name != "" {
			return invalid("realm ID", r.String(), "temporary realm carries a name")
		}
		return r.Invitation.Validate()
	default:
		return invalid("realm ID", strconv.Itoa(int(r.Kind)), "unknown realm kind")
	}
	return nil
}

func (s SceneID) Validate() error {
	if s.Tier > MaxTier {
		return invalid("scene ID", strconv.Itoa(int(s.Tier)), "tier above Z")
	}
	return nil
}

func (a ArenaID) Validate() error {
	if err := a.Realm.Validate(); err != nil {
		return err
	}
	return a.Scene.Validate()
}

func (r RegionID) Validate() error {
	if !regionNames.valid(uint8(r)) {
		return invalid("region", r.String(), "unknown region")
	}
	return nil
}

func (c CohortID) Validate() error {
	if !c.Valid() {
		return invalid("cohort", c.String(), "want 1 to 4")
	}
	return nil
}

func (u UserAgentID) Validate() error {
	if !userAgentNames.valid(uint8(u)) {
		return invalid("user agent", u.String(), "unknown user agent")
	}
	return nil
}

func (l LifecycleID) Validate() error {
	if !lifecycleNames.valid(uint8(l)) {
		return invalid("lifecycle", l.String(), "unknown lifecycle")
	}
	return nil
}

func (p PeriodID) Validate() error {
	if !periodNames.valid(uint8(p)) {
		return invalid("period", p.String(), "unknown period")
	}
	return nil
}
