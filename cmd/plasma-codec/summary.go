// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/bureau-foundation/plasma/lib/plasma"
)

// summarize returns slog key-value pairs describing m: its kind and
// the few fields an operator looks for first.
func summarize(m plasma.Message) []any {
	var s summary
	if err := plasma.Dispatch(&s, m); err != nil {
		return []any{"error", err}
	}
	return append([]any{"kind", m.Kind().String()}, s.attrs...)
}

type summary struct {
	attrs []any
}

func (s *summary) add(attrs ...any) error {
	s.attrs = append(s.attrs, attrs...)
	return nil
}

func (s *summary) RegisterServer(m plasma.RegisterServer) error {
	return s.add("server", m.Server.String(), "region", m.Region.String(), "capacity", m.Capacity)
}

func (s *summary) UnregisterServer(m plasma.UnregisterServer) error {
	return s.add("server", m.Server.String(), "instance", m.Instance.String())
}

func (s *summary) Heartbeat(m plasma.Heartbeat) error {
	return s.add("server", m.Server.String(), "realms", m.Realms.Len(), "cpu", m.CPU)
}

func (s *summary) PlayerJoin(m plasma.PlayerJoin) error {
	return s.add("server", m.Server.String(), "arena", m.Arena.String(), "player", m.Player.String())
}

func (s *summary) PlayerLeave(m plasma.PlayerLeave) error {
	return s.add("server", m.Server.String(), "player", m.Player.String(), "reason", m.Reason.String())
}

func (s *summary) AuthenticatePlayer(m plasma.AuthenticatePlayer) error {
	return s.add("server", m.Server.String(), "player", m.Player.String(), "session", m.Session.String())
}

func (s *summary) ModerationQuery(m plasma.ModerationQuery) error {
	return s.add("query", m.Query.String(), "subject", m.Subject.String(), "verdict", m.Text.Verdict().String())
}

func (s *summary) ModerateChat(m plasma.ModerateChat) error {
	return s.add("chat", m.Chat.String(), "player", m.Player.String(), "verdict", m.Message.Verdict().String())
}

func (s *summary) AnalyticsSnapshot(m plasma.AnalyticsSnapshot) error {
	return s.add("server", m.Server.String(), "filters", m.Metrics.Len())
}

func (s *summary) UpdateLeaderboard(m plasma.UpdateLeaderboard) error {
	return s.add("server", m.Server.String(), "realm", m.Realm.String(), "scores", m.Scores.Len())
}

func (s *summary) ServerLog(m plasma.ServerLog) error {
	return s.add("server", m.Server.String(), "entries", m.Entries.Len())
}

func (s *summary) RoleUpdate(m plasma.RoleUpdate) error {
	return s.add("server", m.Server.String(), "role", m.Role.Kind.String())
}

func (s *summary) Warning(m plasma.Warning) error {
	if m.Player == 0 {
		return s.add("server", m.Server.String(), "to", "everyone")
	}
	return s.add("server", m.Server.String(), "to", m.Player.String())
}

func (s *summary) ModerationResult(m plasma.ModerationResult) error {
	return s.add("query", m.Query.String(), "verdict", m.Verdict.String(), "action", m.Action.String())
}

func (s *summary) PlayerAuthenticated(m plasma.PlayerAuthenticated) error {
	return s.add("player", m.Player.String(), "cohort", m.Cohort.String(), "signed_in", !m.User.IsZero(), "banned", m.Banned)
}

func (s *summary) Leaderboard(m plasma.Leaderboard) error {
	return s.add("realm", m.Realm.String(), "period", m.Period.String(), "scores", m.Scores.Len())
}
