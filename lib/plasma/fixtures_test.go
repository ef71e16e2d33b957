// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plasma

import (
	"math"
	"time"

	"github.com/bureau-foundation/plasma/lib/cardinality"
	"github.com/bureau-foundation/plasma/lib/clock"
	"github.com/bureau-foundation/plasma/lib/entityid"
	"github.com/bureau-foundation/plasma/lib/ids"
	"github.com/bureau-foundation/plasma/lib/metrics"
	"github.com/bureau-foundation/plasma/lib/names"
	"github.com/bureau-foundation/plasma/lib/testutil"
	"github.com/bureau-foundation/plasma/lib/wire"
)

var (
	epoch = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	now   = MillisOf(epoch)
)

func fixedConstraints() Constraints {
	return Constraints{Clock: clock.Fake(epoch), Skew: DefaultSkew}
}

// cleanClassifier judges every text Clean.
type cleanClassifier struct{}

func (cleanClassifier) ClassifyWithin(string, int) names.Verdict { return names.Clean }

func clean(limit names.Limit, value string) names.Text {
	return names.New(limit, value, cleanClassifier{})
}

func entity(n byte) entityid.ID {
	return entityid.ID{0x01, 0x92, 0x3f, 0x00, 0x00, 0x00, 0x10, 0x00, 0, 0, 0, 0, 0, 0, 0, n}
}

func client(n uint16) ids.PlayerID {
	id, ok := ids.ClientPlayerID(n)
	if !ok {
		panic("client player number out of range")
	}
	return id
}

var (
	server = ids.CloudServer(7)
	arena  = ids.ArenaID{Realm: ids.NamedRealm("dev-1"), Scene: ids.SceneID{Tier: 2, Instance: 3}}
)

func sampleEngine(visitors int) metrics.Engine {
	engine := metrics.NewEngine()
	engine.CPU.Push(0.5)
	engine.CPU.Push(0.75)
	engine.RTT.Push(38)
	engine.FPS.Push(60)
	engine.FPS.Push(float32(math.Inf(1)))
	engine.Toxicity.Push(false)
	engine.Toxicity.Push(true)
	engine.MinutesPerVisitHistogram.Push(4)
	engine.Visits.AddCount(uint32(visitors))
	var estimator cardinality.Estimator
	for _, key := range testutil.Keys("visitor", 1, visitors) {
		estimator.ObserveString(key)
	}
	engine.Visitors = estimator.Snapshot()
	return engine
}

// sampleMessages returns valid messages covering every kind and every
// optional field both present and absent.
func sampleMessages() []Message {
	return []Message{
		RegisterServer{
			Server:   server,
			Instance: entity(1),
			Token:    0x5eed_0000_0000_00ff,
			Region:   ids.Europe,
			Name:     clean(names.ServerName, "eu-west-7"),
			Build:    "4f2a9c1",
			Capacity: 500,
			Started:  now - 60_000,
		},
		UnregisterServer{
			Server:   server,
			Instance: entity(1),
			Reason:   clean(names.Diagnostic, "scheduled maintenance"),
			At:       now,
		},
		UnregisterServer{Server: ids.LocalServer(1), Instance: entity(2), At: now},
		Heartbeat{
			Server:            server,
			Instance:          entity(1),
			At:                now,
			CPU:               0.25,
			RAM:               0.5,
			MissedTicks:       0.01,
			CertificateExpiry: now + Millis(90*24*time.Hour/time.Millisecond),
			Realms: wire.MustBounded[RealmHeartbeat, wire.Cap32](
				RealmHeartbeat{Realm: ids.PublicDefaultRealm(), Players: 40, Bots: 10},
				RealmHeartbeat{Realm: ids.NamedRealm("dev-1"), Players: 3},
				RealmHeartbeat{Realm: ids.TemporaryRealm(ids.InvitationID{Server: 7, Number: 12}), Players: 2},
			),
		},
		Heartbeat{Server: server, Instance: entity(1), At: now},
		PlayerJoin{
			Server:    server,
			Arena:     arena,
			Player:    client(4),
			Session:   entity(3),
			Visitor:   981_223,
			User:      17,
			Alias:     clean(names.PlayerAlias, "Starfish"),
			Region:    ids.Oceania,
			UserAgent: ids.DesktopFirefox,
			Cohort:    2,
			Lifecycle: ids.Renewed,
			At:        now,
		},
		PlayerJoin{
			Server:  server,
			Arena:   ids.ArenaID{Realm: ids.PublicDefaultRealm()},
			Player:  client(5),
			Session: entity(4),
			Alias:   clean(names.PlayerAlias, "a name that is far too long"),
			Cohort:  1,
			At:      now,
		},
		PlayerLeave{
			Server:        server,
			Arena:         arena,
			Player:        client(4),
			Session:       entity(3),
			Reason:        LeaveKicked,
			Score:         -12,
			PlayedSeconds: 300,
			At:            now,
		},
		ModerationQuery{
			Query:   entity(5),
			Server:  server,
			Arena:   arena,
			Player:  client(4),
			Subject: SubjectTeamName,
			Text:    clean(names.TeamName, "Blue Lagoon Crew"),
			At:      now,
		},
		ModerateChat{
			Chat:      entity(6),
			Server:    server,
			Arena:     arena,
			Player:    client(4),
			Message:   names.New(names.ChatMessage, "meet me at the docks", cleanClassifier{}),
			Whisper:   true,
			Recipient: client(9),
			At:        now,
		},
		ModerateChat{
			Chat:    entity(7),
			Server:  server,
			Arena:   arena,
			Player:  client(9),
			Message: clean(names.ChatMessage, "gg"),
			Team:    true,
			At:      now,
		},
		AuthenticatePlayer{
			Server:  server,
			Arena:   arena,
			Player:  client(4),
			Session: entity(3),
			Token:   0x7a11_0000_0042,
			At:      now,
		},
		UpdateLeaderboard{
			Server: server,
			Realm:  ids.PublicDefaultRealm(),
			Scores: wire.MustBounded[LeaderboardScore, wire.Cap64](
				LeaderboardScore{Alias: clean(names.PlayerAlias, "Starfish"), Score: 4_200},
				LeaderboardScore{Alias: clean(names.PlayerAlias, "Mako"), Score: 9_001},
			),
			At: now,
		},
		AnalyticsSnapshot{
			Server: server,
			Start:  now - 3_600_000,
			End:    now,
			Metrics: wire.MustBounded[FilteredMetrics, wire.Cap16](
				FilteredMetrics{Filter: metrics.AllVisitors(), Engine: sampleEngine(200)},
				FilteredMetrics{Filter: metrics.ByRegion(ids.Europe), Engine: sampleEngine(20)},
				FilteredMetrics{Filter: metrics.ByCohort(3), Engine: metrics.Engine{}},
			),
		},
		ServerLog{
			Server: server,
			Entries: wire.MustBounded[LogEntry, wire.Cap64](
				LogEntry{At: now - 10, Level: LogInfo, Message: "arena dev-1/B3 created"},
				LogEntry{At: now, Level: LogWarn, Message: "tick overran by 12ms"},
			),
		},
		RoleUpdate{
			Server: server,
			Role: ServerRole{
				Kind:   RoleRealms,
				Realms: wire.MustBounded[ids.RealmID, wire.Cap32](ids.PublicDefaultRealm(), ids.NamedRealm("dev-1")),
			},
		},
		RoleUpdate{
			Server: server,
			Role:   FailedRole(now, clean(names.Diagnostic, "disk full"), ids.CloudServer(8)),
		},
		RoleUpdate{Server: server, Role: FailedRole(now, names.Text{}, ids.ServerID{})},
		RoleUpdate{Server: server, Role: ServerRole{Kind: RolePublic}},
		Warning{Server: server, Message: clean(names.ChatMessage, "restarting in 5 minutes"), At: now},
		Warning{Server: server, Player: client(4), Message: clean(names.ChatMessage, "mind your language"), At: now},
		ModerationResult{
			Query:          entity(6),
			Verdict:        names.Profane,
			Truncated:      true,
			Action:         ActionMute,
			MuteSeconds:    600,
			RulesetVersion: "2026.10",
		},
		ModerationResult{Query: entity(5), Verdict: names.Clean, Action: ActionAllow, RulesetVersion: "2026.10"},
		PlayerAuthenticated{
			Server:    server,
			Player:    client(4),
			Token:     0x7a11_0000_0042,
			Visitor:   981_223,
			User:      17,
			Nick:      clean(names.NickName, "starfish"),
			Cohort:    2,
			Moderator: true,
		},
		PlayerAuthenticated{
			Server:  server,
			Player:  client(5),
			Token:   0x7a11_0000_0043,
			Visitor: 981_224,
			Cohort:  ids.CohortOf(981_224),
			Banned:  true,
		},
		Leaderboard{
			Server: server,
			Period: ids.Weekly,
			Realm:  ids.NamedRealm("dev-1"),
			Scores: wire.MustBounded[LeaderboardScore, wire.Cap16](
				LeaderboardScore{Alias: clean(names.PlayerAlias, "Mako"), Score: 9_001},
				LeaderboardScore{Alias: clean(names.PlayerAlias, "Starfish"), Score: 4_200},
				LeaderboardScore{Alias: clean(names.PlayerAlias, "Pike"), Score: 4_200},
			),
		},
		Leaderboard{Server: server, Period: ids.AllTime, Realm: ids.PublicDefaultRealm()},
	}
}
