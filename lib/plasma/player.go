// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plasma

import (
	"fmt"

	"github.com/bureau-foundation/plasma/lib/entityid"
	"github.com/bureau-foundation/plasma/lib/ids"
	"github.com/bureau-foundation/plasma/lib/names"
	"github.com/bureau-foundation/plasma/lib/wire"
)

// PlayerJoin reports a player entering an arena. Session is generated
// by the server when the connection is admitted. Visitor and User are
// zero when unknown (a first visit, or a player who is not signed in).
type PlayerJoin struct {
	Server    ids.ServerID    `json:"server"`
	Arena     ids.ArenaID     `json:"arena"`
	Player    ids.PlayerID    `json:"player"`
	Session   entityid.ID     `json:"session"`
	Visitor   ids.VisitorID   `json:"visitor,omitempty"`
	User      ids.UserID      `json:"user,omitempty"`
	Alias     names.Text      `json:"alias"`
	Region    ids.RegionID    `json:"region"`
	UserAgent ids.UserAgentID `json:"user_agent"`
	Cohort    ids.CohortID    `json:"cohort"`
	Lifecycle ids.LifecycleID `json:"lifecycle"`
	At        Millis          `json:"at"`
}

func (PlayerJoin) Kind() Kind { return KindPlayerJoin }

func (m PlayerJoin) validate(v *validator) {
	v.check("server", m.Server.Validate())
	v.check("arena", m.Arena.Validate())
	v.require("player", !m.Player.IsZero(), "zero player")
	v.entity("session", m.Session)
	v.text("alias", m.Alias, names.PlayerAlias)
	v.check("region", m.Region.Validate())
	v.check("user_agent", m.UserAgent.Validate())
	v.check("cohort", m.Cohort.Validate())
	v.check("lifecycle", m.Lifecycle.Validate())
	v.timestamp("at", m.At)
}

func (m PlayerJoin) encode(e *wire.Encoder) {
	m.Server.Encode(e)
	m.Arena.Encode(e)
	m.Player.Encode(e)
	m.Session.Encode(e)
	e.Flags(!m.Visitor.IsZero(), !m.User.IsZero())
	if !m.Visitor.IsZero() {
		m.Visitor.Encode(e)
	}
	if !m.User.IsZero() {
		m.User.Encode(e)
	}
	m.Alias.Encode(e)
	m.Region.Encode(e)
	m.UserAgent.Encode(e)
	m.Cohort.Encode(e)
	m.Lifecycle.Encode(e)
	m.At.Encode(e)
}

func decodePlayerJoin(d *wire.Decoder) Message {
	m := PlayerJoin{
		Server:  ids.DecodeServerID(d, "player_join.server"),
		Arena:   ids.DecodeArenaID(d, "player_join.arena"),
		Player:  ids.DecodePlayerID(d, "player_join.player"),
		Session: entityid.DecodeRequired(d, "player_join.session"),
	}
	present := d.Flags("player_join.present", 2)
	if present[0] {
		m.Visitor = ids.DecodeVisitorID(d, "player_join.visitor")
	}
	if present[1] {
		m.User = ids.DecodeUserID(d, "player_join.user")
	}
	m.Alias = names.Decode(d, "player_join.alias", names.PlayerAlias)
	m.Region = ids.DecodeRegionID(d, "player_join.region")
	m.UserAgent = ids.DecodeUserAgentID(d, "player_join.user_agent")
	m.Cohort = ids.DecodeCohortID(d, "player_join.cohort")
	m.Lifecycle = ids.DecodeLifecycleID(d, "player_join.lifecycle")
	m.At = decodeMillis(d, "player_join.at")
	return m
}

func (m PlayerJoin) classify(classifier names.Classifier) Message {
	m.Alias = m.Alias.Classify(names.PlayerAlias, classifier)
	return m
}

func (m PlayerJoin) dispatch(h Handler) error { return h.PlayerJoin(m) }

// LeaveReason says why a player left.
type LeaveReason uint8

const (
	LeaveQuit LeaveReason = iota
	LeaveTimeout
	LeaveKicked
	LeaveBanned

	leaveReasonCount
)

var leaveReasonNames = [leaveReasonCount]string{"quit", "timeout", "kicked", "banned"}

func (r LeaveReason) String() string {
	if r < leaveReasonCount {
		return leaveReasonNames[r]
	}
	return fmt.Sprintf("LeaveReason(%d)", r)
}

func (r LeaveReason) MarshalText() ([]byte, error) { return marshalEnum(r, r < leaveReasonCount) }

func (r *LeaveReason) UnmarshalText(text []byte) error {
	return unmarshalEnum(r, "leave reason", leaveReasonNames[:], text)
}

// PlayerLeave reports a player leaving an arena, with the final score
// and time played.
type PlayerLeave struct {
	Server        ids.ServerID `json:"server"`
	Arena         ids.ArenaID  `json:"arena"`
	Player        ids.PlayerID `json:"player"`
	Session       entityid.ID  `json:"session"`
	Reason        LeaveReason  `json:"reason"`
	Score         int64        `json:"score"`
	PlayedSeconds uint32       `json:"played_seconds"`
	At            Millis       `json:"at"`
}

func (PlayerLeave) Kind() Kind { return KindPlayerLeave }

func (m PlayerLeave) validate(v *validator) {
	v.check("server", m.Server.Validate())
	v.check("arena", m.Arena.Validate())
	v.require("player", !m.Player.IsZero(), "zero player")
	v.entity("session", m.Session)
	v.require("reason", m.Reason < leaveReasonCount, "unknown reason "+m.Reason.String())
	v.timestamp("at", m.At)
}

func (m PlayerLeave) encode(e *wire.Encoder) {
	m.Server.Encode(e)
	m.Arena.Encode(e)
	m.Player.Encode(e)
	m.Session.Encode(e)
	e.Uvarint(uint64(m.Reason))
	e.Varint(m.Score)
	e.Uvarint(uint64(m.PlayedSeconds))
	m.At.Encode(e)
}

func decodePlayerLeave(d *wire.Decoder) Message {
	return PlayerLeave{
		Server:        ids.DecodeServerID(d, "player_leave.server"),
		Arena:         ids.DecodeArenaID(d, "player_leave.arena"),
		Player:        ids.DecodePlayerID(d, "player_leave.player"),
		Session:       entityid.DecodeRequired(d, "player_leave.session"),
		Reason:        LeaveReason(d.Tag("player_leave.reason", uint64(leaveReasonCount))),
		Score:         d.Varint("player_leave.score"),
		PlayedSeconds: d.Uint32("player_leave.played_seconds"),
		At:            decodeMillis(d, "player_leave.at"),
	}
}

func (m PlayerLeave) classify(names.Classifier) Message { return m }

func (m PlayerLeave) dispatch(h Handler) error { return h.PlayerLeave(m) }

// AuthenticatePlayer asks the backend who a connected player is.
// Token is the session token the client presented; the backend
// answers with PlayerAuthenticated.
type AuthenticatePlayer struct {
	Server  ids.ServerID     `json:"server"`
	Arena   ids.ArenaID      `json:"arena"`
	Player  ids.PlayerID     `json:"player"`
	Session entityid.ID      `json:"session"`
	Token   ids.SessionToken `json:"token"`
	At      Millis           `json:"at"`
}

func (AuthenticatePlayer) Kind() Kind { return KindAuthenticatePlayer }

func (m AuthenticatePlayer) validate(v *validator) {
	v.check("server", m.Server.Validate())
	v.check("arena", m.Arena.Validate())
	v.require("player", !m.Player.IsZero(), "zero player")
	v.entity("session", m.Session)
	v.require("token", !m.Token.IsZero(), "zero token")
	v.timestamp("at", m.At)
}

func (m AuthenticatePlayer) encode(e *wire.Encoder) {
	m.Server.Encode(e)
	m.Arena.Encode(e)
	m.Player.Encode(e)
	m.Session.Encode(e)
	m.Token.Encode(e)
	m.At.Encode(e)
}

func decodeAuthenticatePlayer(d *wire.Decoder) Message {
	return AuthenticatePlayer{
		Server:  ids.DecodeServerID(d, "authenticate_player.server"),
		Arena:   ids.DecodeArenaID(d, "authenticate_player.arena"),
		Player:  ids.DecodePlayerID(d, "authenticate_player.player"),
		Session: entityid.DecodeRequired(d, "authenticate_player.session"),
		Token:   ids.DecodeSessionToken(d, "authenticate_player.token"),
		At:      decodeMillis(d, "authenticate_player.at"),
	}
}

func (m AuthenticatePlayer) classify(names.Classifier) Message { return m }

func (m AuthenticatePlayer) dispatch(h Handler) error { return h.AuthenticatePlayer(m) }

// PlayerAuthenticated answers AuthenticatePlayer. Every player has a
// visitor; User and Nick are set only for players signed in to an
// account.
type PlayerAuthenticated struct {
	Server    ids.ServerID     `json:"server"`
	Player    ids.PlayerID     `json:"player"`
	Token     ids.SessionToken `json:"token"`
	Visitor   ids.VisitorID    `json:"visitor"`
	User      ids.UserID       `json:"user,omitempty"`
	Nick      names.Text       `json:"nick,omitzero"`
	Cohort    ids.CohortID     `json:"cohort"`
	Admin     bool             `json:"admin,omitempty"`
	Moderator bool             `json:"moderator,omitempty"`
	// Banned players may not play in the arena's realm; the server
	// disconnects them.
	Banned bool `json:"banned,omitempty"`
}

func (PlayerAuthenticated) Kind() Kind { return KindPlayerAuthenticated }

func (m PlayerAuthenticated) validate(v *validator) {
	v.check("server", m.Server.Validate())
	v.require("player", !m.Player.IsZero(), "zero player")
	v.require("token", !m.Token.IsZero(), "zero token")
	v.require("visitor", !m.Visitor.IsZero(), "zero visitor")
	v.optionalText("nick", m.Nick, names.NickName)
	v.require("nick", m.Nick.IsZero() || !m.User.IsZero(), "nick name without a user")
	v.check("cohort", m.Cohort.Validate())
}

func (m PlayerAuthenticated) encode(e *wire.Encoder) {
	m.Server.Encode(e)
	m.Player.Encode(e)
	m.Token.Encode(e)
	m.Visitor.Encode(e)
	e.Flags(!m.User.IsZero(), !m.Nick.IsZero(), m.Admin, m.Moderator, m.Banned)
	if !m.User.IsZero() {
		m.User.Encode(e)
	}
	if !m.Nick.IsZero() {
		m.Nick.Encode(e)
	}
	m.Cohort.Encode(e)
}

func decodePlayerAuthenticated(d *wire.Decoder) Message {
	m := PlayerAuthenticated{
		Server:  ids.DecodeServerID(d, "player_authenticated.server"),
		Player:  ids.DecodePlayerID(d, "player_authenticated.player"),
		Token:   ids.DecodeSessionToken(d, "player_authenticated.token"),
		Visitor: ids.DecodeVisitorID(d, "player_authenticated.visitor"),
	}
	flags := d.Flags("player_authenticated.flags", 5)
	if flags[0] {
		m.User = ids.DecodeUserID(d, "player_authenticated.user")
	}
	if flags[1] {
		m.Nick = names.Decode(d, "player_authenticated.nick", names.NickName)
	}
	m.Admin, m.Moderator, m.Banned = flags[2], flags[3], flags[4]
	m.Cohort = ids.DecodeCohortID(d, "player_authenticated.cohort")
	return m
}

func (m PlayerAuthenticated) classify(classifier names.Classifier) Message {
	m.Nick = m.Nick.Classify(names.NickName, classifier)
	return m
}

func (m PlayerAuthenticated) dispatch(h Handler) error { return h.PlayerAuthenticated(m) }
