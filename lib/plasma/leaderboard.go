// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plasma

import (
	"fmt"

	"github.com/bureau-foundation/plasma/lib/ids"
	"github.com/bureau-foundation/plasma/lib/names"
	"github.com/bureau-foundation/plasma/lib/wire"
)

// LeaderboardScore is one player's score.
type LeaderboardScore struct {
	Alias names.Text `json:"alias"`
	Score uint32     `json:"score"`
}

// leaderboardScoreMinSize is a text header, an empty alias and a score.
const leaderboardScoreMinSize = 3

func encodeLeaderboardScore(e *wire.Encoder, score LeaderboardScore) {
	score.Alias.Encode(e)
	e.Uvarint(uint64(score.Score))
}

func decodeLeaderboardScore(d *wire.Decoder) LeaderboardScore {
	return LeaderboardScore{
		Alias: names.Decode(d, "leaderboard.alias", names.PlayerAlias),
		Score: d.Uint32("leaderboard.score"),
	}
}

func (v *validator) scores(field string, scores []LeaderboardScore, ranked bool) {
	for i, score := range scores {
		v.text(fmt.Sprintf("%s[%d].alias", field, i), score.Alias, names.PlayerAlias)
		if ranked && i > 0 {
			v.require(fmt.Sprintf("%s[%d].score", field, i), score.Score <= scores[i-1].Score, "scores out of rank order")
		}
	}
}

func classifyScores[C wire.Capacity](scores wire.Bounded[LeaderboardScore, C], classifier names.Classifier) wire.Bounded[LeaderboardScore, C] {
	items := scores.Items()
	for i := range items {
		items[i].Alias = items[i].Alias.Classify(names.PlayerAlias, classifier)
	}
	classified, err := wire.NewBounded[LeaderboardScore, C](items...)
	if err != nil {
		return scores
	}
	return classified
}

// UpdateLeaderboard submits scores from finished games, in batches.
// Each realm has its own leaderboards; the backend merges the scores
// into every period.
type UpdateLeaderboard struct {
	Server ids.ServerID                               `json:"server"`
	Realm  ids.RealmID                                `json:"realm"`
	Scores wire.Bounded[LeaderboardScore, wire.Cap64] `json:"scores"`
	At     Millis                                     `json:"at"`
}

func (UpdateLeaderboard) Kind() Kind { return KindUpdateLeaderboard }

func (m UpdateLeaderboard) validate(v *validator) {
	v.check("server", m.Server.Validate())
	v.check("realm", m.Realm.Validate())
	v.require("scores", m.Scores.Len() > 0, "no scores")
	v.scores("scores", m.Scores.Items(), false)
	v.timestamp("at", m.At)
}

func (m UpdateLeaderboard) encode(e *wire.Encoder) {
	m.Server.Encode(e)
	m.Realm.Encode(e)
	m.Scores.Encode(e, encodeLeaderboardScore)
	m.At.Encode(e)
}

func decodeUpdateLeaderboard(d *wire.Decoder) Message {
	return UpdateLeaderboard{
		Server: ids.DecodeServerID(d, "update_leaderboard.server"),
		Realm:  ids.DecodeRealmID(d, "update_leaderboard.realm"),
		Scores: wire.DecodeBounded[LeaderboardScore, wire.Cap64](d, "update_leaderboard.scores", leaderboardScoreMinSize, decodeLeaderboardScore),
		At:     decodeMillis(d, "update_leaderboard.at"),
	}
}

func (m UpdateLeaderboard) classify(classifier names.Classifier) Message {
	m.Scores = classifyScores(m.Scores, classifier)
	return m
}

func (m UpdateLeaderboard) dispatch(h Handler) error { return h.UpdateLeaderboard(m) }

// Leaderboard is the top of one realm's leaderboard for one period,
// highest score first. The backend sends it after RegisterServer and
// whenever the board changes.
type Leaderboard struct {
	Server ids.ServerID                               `json:"server"`
	Period ids.PeriodID                               `json:"period"`
	Realm  ids.RealmID                                `json:"realm"`
	Scores wire.Bounded[LeaderboardScore, wire.Cap16] `json:"scores"`
}

func (Leaderboard) Kind() Kind { return KindLeaderboard }

func (m Leaderboard) validate(v *validator) {
	v.check("server", m.Server.Validate())
	v.check("period", m.Period.Validate())
	v.check("realm", m.Realm.Validate())
	v.scores("scores", m.Scores.Items(), true)
}

func (m Leaderboard) encode(e *wire.Encoder) {
	m.Server.Encode(e)
	m.Period.Encode(e)
	m.Realm.Encode(e)
	m.Scores.Encode(e, encodeLeaderboardScore)
}

func decodeLeaderboard(d *wire.Decoder) Message {
	return Leaderboard{
		Server: ids.DecodeServerID(d, "leaderboard.server"),
		Period: ids.DecodePeriodID(d, "leaderboard.period"),
		Realm:  ids.DecodeRealmID(d, "leaderboard.realm"),
		Scores: wire.DecodeBounded[LeaderboardScore, wire.Cap16](d, "leaderboard.scores", leaderboardScoreMinSize, decodeLeaderboardScore),
	}
}

func (m Leaderboard) classify(classifier names.Classifier) Message {
	m.Scores = classifyScores(m.Scores, classifier)
	return m
}

func (m Leaderboard) dispatch(h Handler) error { return h.Leaderboard(m) }
