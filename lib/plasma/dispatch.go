// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plasma

import "errors"

// Handler has one method per message kind. A type that implements it
// handles the whole dialect; adding a kind breaks every Handler until
// it is handled.
type Handler interface {
	RegisterServer(RegisterServer) error
	UnregisterServer(UnregisterServer) error
	Heartbeat(Heartbeat) error
	PlayerJoin(PlayerJoin) error
	PlayerLeave(PlayerLeave) error
	AuthenticatePlayer(AuthenticatePlayer) error
	ModerationQuery(ModerationQuery) error
	ModerateChat(ModerateChat) error
	AnalyticsSnapshot(AnalyticsSnapshot) error
	ServerLog(ServerLog) error
	UpdateLeaderboard(UpdateLeaderboard) error
	RoleUpdate(RoleUpdate) error
	Warning(Warning) error
	PlayerAuthenticated(PlayerAuthenticated) error
	ModerationResult(ModerationResult) error
	Leaderboard(Leaderboard) error
}

// Dispatch calls the Handler method for m's kind and returns its
// error.
func Dispatch(h Handler, m Message) error {
	if m == nil {
		return errors.New("plasma: dispatch of nil message")
	}
	return m.dispatch(h)
}
