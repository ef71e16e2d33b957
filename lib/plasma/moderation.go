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

// Subject is the kind of text a ModerationQuery asks about. It
// selects the limit the text is bounded and classified by.
type Subject uint8

const (
	SubjectAlias Subject = iota
	SubjectTeamName
	SubjectChat

	subjectCount
)

var subjectNames = [subjectCount]string{"alias", "team_name", "chat"}

func (s Subject) String() string {
	if s < subjectCount {
		return subjectNames[s]
	}
	return fmt.Sprintf("Subject(%d)", s)
}

// Limit returns the text limit for s. Unknown subjects get the chat
// limit.
func (s Subject) Limit() names.Limit {
	switch s {
	case SubjectAlias:
		return names.PlayerAlias
	case SubjectTeamName:
		return names.TeamName
	}
	return names.ChatMessage
}

func (s Subject) MarshalText() ([]byte, error) { return marshalEnum(s, s < subjectCount) }

func (s *Subject) UnmarshalText(text []byte) error {
	return unmarshalEnum(s, "subject", subjectNames[:], text)
}

// ModerationQuery asks the backend to review text a player submitted.
// The server has already classified the text locally; the backend
// answers with a ModerationResult carrying the same Query.
type ModerationQuery struct {
	Query   entityid.ID  `json:"query"`
	Server  ids.ServerID `json:"server"`
	Arena   ids.ArenaID  `json:"arena"`
	Player  ids.PlayerID `json:"player"`
	Subject Subject      `json:"subject"`
	Text    names.Text   `json:"text"`
	At      Millis       `json:"at"`
}

func (ModerationQuery) Kind() Kind { return KindModerationQuery }

func (m ModerationQuery) validate(v *validator) {
	v.entity("query", m.Query)
	v.check("server", m.Server.Validate())
	v.check("arena", m.Arena.Validate())
	v.require("player", !m.Player.IsZero(), "zero player")
	v.require("subject", m.Subject < subjectCount, "unknown subject "+m.Subject.String())
	v.text("text", m.Text, m.Subject.Limit())
	v.timestamp("at", m.At)
}

func (m ModerationQuery) encode(e *wire.Encoder) {
	m.Query.Encode(e)
	m.Server.Encode(e)
	m.Arena.Encode(e)
	m.Player.Encode(e)
	e.Uvarint(uint64(m.Subject))
	m.Text.Encode(e)
	m.At.Encode(e)
}

func decodeModerationQuery(d *wire.Decoder) Message {
	m := ModerationQuery{
		Query:   entityid.DecodeRequired(d, "moderation_query.query"),
		Server:  ids.DecodeServerID(d, "moderation_query.server"),
		Arena:   ids.DecodeArenaID(d, "moderation_query.arena"),
		Player:  ids.DecodePlayerID(d, "moderation_query.player"),
		Subject: Subject(d.Tag("moderation_query.subject", uint64(subjectCount))),
	}
	m.Text = names.Decode(d, "moderation_query.text", m.Subject.Limit())
	m.At = decodeMillis(d, "moderation_query.at")
	return m
}

func (m ModerationQuery) classify(classifier names.Classifier) Message {
	m.Text = m.Text.Classify(m.Subject.Limit(), classifier)
	return m
}

func (m ModerationQuery) dispatch(h Handler) error { return h.ModerationQuery(m) }

// ModerateChat reports a chat message with its local verdict so the
// backend can audit it. A whisper names its Recipient; other messages
// leave it zero.
type ModerateChat struct {
	Chat      entityid.ID  `json:"chat"`
	Server    ids.ServerID `json:"server"`
	Arena     ids.ArenaID  `json:"arena"`
	Player    ids.PlayerID `json:"player"`
	Message   names.Text   `json:"message"`
	Team      bool         `json:"team,omitempty"`
	Whisper   bool         `json:"whisper,omitempty"`
	Recipient ids.PlayerID `json:"recipient,omitempty"`
	At        Millis       `json:"at"`
}

func (ModerateChat) Kind() Kind { return KindModerateChat }

func (m ModerateChat) validate(v *validator) {
	v.entity("chat", m.Chat)
	v.check("server", m.Server.Validate())
	v.check("arena", m.Arena.Validate())
	v.require("player", !m.Player.IsZero(), "zero player")
	v.text("message", m.Message, names.ChatMessage)
	v.require("recipient", m.Whisper != m.Recipient.IsZero(), "a whisper needs a recipient, other chat must not name one")
	v.require("whisper", !(m.Whisper && m.Team), "a whisper cannot be team chat")
	v.timestamp("at", m.At)
}

func (m ModerateChat) encode(e *wire.Encoder) {
	m.Chat.Encode(e)
	m.Server.Encode(e)
	m.Arena.Encode(e)
	m.Player.Encode(e)
	m.Message.Encode(e)
	e.Flags(m.Team, m.Whisper)
	if m.Whisper {
		m.Recipient.Encode(e)
	}
	m.At.Encode(e)
}

func decodeModerateChat(d *wire.Decoder) Message {
	m := ModerateChat{
		Chat:    entityid.DecodeRequired(d, "moderate_chat.chat"),
		Server:  ids.DecodeServerID(d, "moderate_chat.server"),
		Arena:   ids.DecodeArenaID(d, "moderate_chat.arena"),
		Player:  ids.DecodePlayerID(d, "moderate_chat.player"),
		Message: names.Decode(d, "moderate_chat.message", names.ChatMessage),
	}
	flags := d.Flags("moderate_chat.flags", 2)
	m.Team, m.Whisper = flags[0], flags[1]
	if m.Whisper {
		m.Recipient = ids.DecodePlayerID(d, "moderate_chat.recipient")
	}
	m.At = decodeMillis(d, "moderate_chat.at")
	return m
}

func (m ModerateChat) classify(classifier names.Classifier) Message {
	m.Message = m.Message.Classify(names.ChatMessage, classifier)
	return m
}

func (m ModerateChat) dispatch(h Handler) error { return h.ModerateChat(m) }

// Action is what the backend tells a server to do about moderated
// text.
type Action uint8

const (
	ActionAllow Action = iota
	ActionCensor
	ActionMute
	ActionKick
	ActionBan

	actionCount
)

var actionNames = [actionCount]string{"allow", "censor", "mute", "kick", "ban"}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", a)
}

func (a Action) MarshalText() ([]byte, error) { return marshalEnum(a, a < actionCount) }

func (a *Action) UnmarshalText(text []byte) error {
	return unmarshalEnum(a, "action", actionNames[:], text)
}

// MaxRulesetVersion is the capacity of ModerationResult.RulesetVersion.
const MaxRulesetVersion = 32

// ModerationResult answers a ModerationQuery or ModerateChat with the
// backend's verdict. RulesetVersion names the ruleset that produced
// the verdict so a disagreement with the server's own verdict can be
// traced to a ruleset mismatch.
type ModerationResult struct {
	Query          entityid.ID   `json:"query"`
	Verdict        names.Verdict `json:"verdict"`
	Truncated      bool          `json:"truncated,omitempty"`
	Action         Action        `json:"action"`
	MuteSeconds    uint32        `json:"mute_seconds,omitempty"`
	RulesetVersion string        `json:"ruleset_version"`
}

func (ModerationResult) Kind() Kind { return KindModerationResult }

func (m ModerationResult) validate(v *validator) {
	v.entity("query", m.Query)
	v.require("verdict", m.Verdict.Valid() && m.Verdict != names.Pending, "verdict "+m.Verdict.String()+" is not a classification")
	v.require("action", m.Action < actionCount, "unknown action "+m.Action.String())
	v.require("mute_seconds", (m.Action == ActionMute) == (m.MuteSeconds > 0), "mute needs a duration, other actions must not carry one")
	v.require("ruleset_version", m.RulesetVersion != "", "empty")
	v.bounded("ruleset_version", m.RulesetVersion, MaxRulesetVersion)
}

func (m ModerationResult) encode(e *wire.Encoder) {
	m.Query.Encode(e)
	e.Uint8(uint8(m.Verdict))
	e.Bool(m.Truncated)
	e.Uvarint(uint64(m.Action))
	if m.Action == ActionMute {
		e.Uvarint(uint64(m.MuteSeconds))
	}
	e.String(m.RulesetVersion)
}

func decodeModerationResult(d *wire.Decoder) Message {
	m := ModerationResult{Query: entityid.DecodeRequired(d, "moderation_result.query")}
	m.Verdict = names.Verdict(d.Uint8("moderation_result.verdict"))
	if d.Err() == nil && (!m.Verdict.Valid() || m.Verdict == names.Pending) {
		d.Failf(wire.UnknownVariant, "moderation_result.verdict", "verdict %d", m.Verdict)
	}
	m.Truncated = d.Bool("moderation_result.truncated")
	m.Action = Action(d.Tag("moderation_result.action", uint64(actionCount)))
	if m.Action == ActionMute {
		m.MuteSeconds = d.Uint32("moderation_result.mute_seconds")
	}
	m.RulesetVersion = d.String("moderation_result.ruleset_version", MaxRulesetVersion)
	return m
}

func (m ModerationResult) classify(names.Classifier) Message { return m }

func (m ModerationResult) dispatch(h Handler) error { return h.ModerationResult(m) }
