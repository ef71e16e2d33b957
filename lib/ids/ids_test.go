// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ids

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/bureau-foundation/plasma/lib/wire"
)

func TestServerIDText(t *testing.T) {
	id := CloudServer(8)
	if got := id.String(); got != "Cloud/8" {
		t.Fatalf("String() = %q, want %q", got, "Cloud/8")
	}
	parsed, err := ParseServerID("Local/255")
	if err != nil {
		t.Fatalf("ParseServerID: %v", err)
	}
	if parsed != LocalServer(255) {
		t.Errorf("ParseServerID = %v, want Local/255", parsed)
	}
	for _, text := range []string{"Cloud", "Cloud/0", "Cloud/256", "Edge/1", "Cloud/x"} {
		if _, err := ParseServerID(text); !errors.Is(err, ErrInvalid) {
			t.Errorf("ParseServerID(%q) = %v, want ErrInvalid", text, err)
		}
	}
}

func TestPlayerIDParity(t *testing.T) {
	for n := range uint16(100) {
		client, ok := ClientPlayerID(n)
		if !ok || !client.IsClient() || client.IsBot() {
			t.Fatalf("ClientPlayerID(%d) = %d, %v", n, client, ok)
		}
		bot, ok := BotPlayerID(n)
		if !ok || !bot.IsBot() || bot.IsClient() {
			t.Fatalf("BotPlayerID(%d) = %d, %v", n, bot, ok)
		}
	}
	if id, _ := ClientPlayerID(0); id != 1 {
		t.Errorf("ClientPlayerID(0) = %d, want 1", id)
	}
	if id, _ := BotPlayerID(0); id != 2 {
		t.Errorf("BotPlayerID(0) = %d, want 2", id)
	}
	if _, ok := ClientPlayerID(1 << 15); ok {
		t.Error("ClientPlayerID(32768) should overflow")
	}
	if _, ok := BotPlayerID(1<<15 - 1); ok {
		t.Error("BotPlayerID(32767) should overflow")
	}
}

func TestSceneIDText(t *testing.T) {
	tests := []struct {
		text  string
		scene SceneID
		canon string
	}{
		{"A0", SceneID{Tier: 1}, "A0"},
		{"Z12", SceneID{Tier: 26, Instance: 12}, "Z12"},
		{"0", SceneID{}, "0"},
		{"7", SceneID{Instance: 7}, "7"},
		{"C", SceneID{Tier: 3}, "C0"},
	}
	for _, test := range tests {
		scene, err := ParseSceneID(test.text)
		if err != nil {
			t.Fatalf("ParseSceneID(%q): %v", test.text, err)
		}
		if scene != test.scene {
			t.Errorf("ParseSceneID(%q) = %+v, want %+v", test.text, scene, test.scene)
		}
		if got := scene.String(); got != test.canon {
			t.Errorf("String() = %q, want %q", got, test.canon)
		}
	}
	for _, text := range []string{"", "a1", "A256", "A-1"} {
		if _, err := ParseSceneID(text); err == nil {
			t.Errorf("ParseSceneID(%q) succeeded", text)
		}
	}
}

func TestTierLetterClamps(t *testing.T) {
	if got := TierNumber(40).Letter(); got != 'Z' {
		t.Errorf("Letter() = %c, want Z", got)
	}
	if TierNumber(0).Valid() || !TierNumber(26).Valid() {
		t.Error("Valid() range wrong")
	}
}

func TestInvitationCodeRoundTrip(t *testing.T) {
	for _, server := range []ServerNumber{1, 2, 17, 255} {
		for _, number := range []uint16{0, 1, 0x1234, 0xffff} {
			inv := InvitationID{Server: server, Number: number}
			code := inv.Code()
			if len(code) != invitationCodeLength {
				t.Fatalf("Code() = %q, want 6 letters", code)
			}
			parsed, err := ParseInvitationID(code)
			if err != nil {
				t.Fatalf("ParseInvitationID(%q): %v", code, err)
			}
			if parsed != inv {
				t.Errorf("ParseInvitationID(%q) = %+v, want %+v", code, parsed, inv)
			}
		}
	}
}

func TestInvitationRejects(t *testing.T) {
	zeroServer := InvitationID{Number: 5}.Code()
	for _, text := range []string{"", "CDFHJ", "CDFHJKL", "AAAAAA", zeroServer} {
		if _, err := ParseInvitationID(text); !errors.Is(err, ErrInvalid) {
			t.Errorf("ParseInvitationID(%q) = %v, want ErrInvalid", text, err)
		}
	}
}

func TestRealmIDText(t *testing.T) {
	temporary := TemporaryRealm(InvitationID{Server: 3, Number: 99})
	tests := []struct {
		realm RealmID
		text  string
	}{
		{PublicDefaultRealm(), "public/default"},
		{NamedRealm("tournament"), "named/tournament"},
		{temporary, "temporary/" + temporary.Invitation.Code()},
	}
	for _, test := range tests {
		if got := test.realm.String(); got != test.text {
			t.Errorf("String() = %q, want %q", got, test.text)
		}
		parsed, err := ParseRealmID(test.text)
		if err != nil {
			t.Fatalf("ParseRealmID(%q): %v", test.text, err)
		}
		if parsed != test.realm {
			t.Errorf("ParseRealmID(%q) = %+v, want %+v", test.text, parsed, test.realm)
		}
	}
	for _, text := range []string{"public", "public/other", "named/www", "named/Caps", "named/thirteenchars", "private/x"} {
		if _, err := ParseRealmID(text); !errors.Is(err, ErrInvalid) {
			t.Errorf("ParseRealmID(%q) = %v, want ErrInvalid", text, err)
		}
	}
}

func TestArenaIDJSON(t *testing.T) {
	arena := ArenaID{Realm: NamedRealm("dev-1"), Scene: SceneID{Tier: 2, Instance: 4}}
	data, err := json.Marshal(arena)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"named/dev-1/B4"` {
		t.Errorf("Marshal = %s, want %q", data, "named/dev-1/B4")
	}
	var decoded ArenaID
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != arena {
		t.Errorf("Unmarshal = %+v, want %+v", decoded, arena)
	}
	if got, _ := ParseArenaID("public/default/A0"); got.Realm != PublicDefaultRealm() || got.Scene.Tier != 1 {
		t.Errorf("ParseArenaID(public/default/A0) = %+v", got)
	}
}

func TestRegionDistance(t *testing.T) {
	for _, region := range Regions {
		if region.Distance(region) != 0 {
			t.Errorf("%s.Distance(self) = %d", region, region.Distance(region))
		}
	}
	if got := Europe.Distance(Africa); got != 1 {
		t.Errorf("Europe.Distance(Africa) = %d, want 1", got)
	}
	if got := NorthAmerica.Distance(Africa); got != 3 {
		t.Errorf("NorthAmerica.Distance(Africa) = %d, want 3", got)
	}
	closest, ok := SouthAmerica.Closest([]RegionID{Europe, Asia, NorthAmerica})
	if !ok || closest != NorthAmerica {
		t.Errorf("Closest = %s, %v, want NorthAmerica", closest, ok)
	}
	if DefaultRegion != NorthAmerica {
		t.Errorf("DefaultRegion = %s", DefaultRegion)
	}
}

func TestPickCohortWeights(t *testing.T) {
	counts := map[CohortID]int{}
	for i := range uint64(15) {
		counts[PickCohort(i)]++
	}
	want := map[CohortID]int{1: 8, 2: 4, 3: 2, 4: 1}
	for cohort, count := range want {
		if counts[cohort] != count {
			t.Errorf("cohort %d chosen %d of 15 times, want %d", cohort, counts[cohort], count)
		}
	}
}

func TestCohortOf(t *testing.T) {
	const visitors = 60_000
	counts := map[CohortID]int{}
	for visitor := VisitorID(1); visitor <= visitors; visitor++ {
		cohort := CohortOf(visitor)
		if !cohort.Valid() {
			t.Fatalf("CohortOf(%d) = %d", visitor, cohort)
		}
		if CohortOf(visitor) != cohort {
			t.Fatalf("CohortOf(%d) is not stable", visitor)
		}
		counts[cohort]++
	}
	for cohort := MinCohort; cohort <= MaxCohort; cohort++ {
		want := float64(visitors) * float64(cohort.Weight()) / 15
		if got := float64(counts[cohort]); got < want*0.9 || got > want*1.1 {
			t.Errorf("cohort %d holds %.0f visitors, want about %.0f", cohort, got, want)
		}
	}
}

func TestTokenText(t *testing.T) {
	token := SessionToken(0xabc)
	if got := token.String(); got != "0000000000000abc" {
		t.Errorf("String() = %q", got)
	}
	parsed, err := ParseSessionToken("0000000000000abc")
	if err != nil || parsed != token {
		t.Errorf("ParseSessionToken = %v, %v", parsed, err)
	}
	if _, err := ParseServerToken("0000000000000000"); !errors.Is(err, ErrInvalid) {
		t.Errorf("zero token: %v", err)
	}
}

func TestEnumText(t *testing.T) {
	for _, name := range userAgentNames {
		agent, err := ParseUserAgentID(name)
		if err != nil || agent.String() != name {
			t.Errorf("ParseUserAgentID(%q) = %v, %v", name, agent, err)
		}
	}
	if _, err := ParsePeriodID("Monthly"); !errors.Is(err, ErrInvalid) {
		t.Errorf("ParsePeriodID(Monthly) = %v", err)
	}
	if got := UserAgentID(200).String(); got != "Unknown(200)" {
		t.Errorf("String() = %q", got)
	}
}

func TestWireRoundTrip(t *testing.T) {
	arena := ArenaID{Realm: TemporaryRealm(InvitationID{Server: 9, Number: 300}), Scene: SceneID{Tier: 5, Instance: 1}}
	server := CloudServer(42)
	player, _ := BotPlayerID(7)

	encoder := wire.NewEncoder(64)
	arena.Encode(encoder)
	server.Encode(encoder)
	player.Encode(encoder)
	VisitorID(1 << 40).Encode(encoder)
	Oceania.Encode(encoder)
	CohortID(3).Encode(encoder)
	Weekly.Encode(encoder)
	Renewed.Encode(encoder)
	Tablet.Encode(encoder)

	decoder := wire.NewDecoder(encoder.Bytes())
	if got := DecodeArenaID(decoder, "arena"); got != arena {
		t.Errorf("arena = %+v, want %+v", got, arena)
	}
	if got := DecodeServerID(decoder, "server"); got != server {
		t.Errorf("server = %v, want %v", got, server)
	}
	if got := DecodePlayerID(decoder, "player"); got != player {
		t.Errorf("player = %v, want %v", got, player)
	}
	if got := DecodeVisitorID(decoder, "visitor"); got != 1<<40 {
		t.Errorf("visitor = %v", got)
	}
	if got := DecodeRegionID(decoder, "region"); got != Oceania {
		t.Errorf("region = %v", got)
	}
	if got := DecodeCohortID(decoder, "cohort"); got != 3 {
		t.Errorf("cohort = %v", got)
	}
	if got := DecodePeriodID(decoder, "period"); got != Weekly {
		t.Errorf("period = %v", got)
	}
	if got := DecodeLifecycleID(decoder, "lifecycle"); got != Renewed {
		t.Errorf("lifecycle = %v", got)
	}
	if got := DecodeUserAgentID(decoder, "agent"); got != Tablet {
		t.Errorf("agent = %v", got)
	}
	if err := decoder.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
}

func TestWireRejectsOutOfDomain(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		decode func(*wire.Decoder)
	}{
		{"zero server number", []byte{0, 0}, func(d *wire.Decoder) { DecodeServerID(d, "server") }},
		{"server kind", []byte{2, 1}, func(d *wire.Decoder) { DecodeServerID(d, "server") }},
		{"zero player", []byte{0}, func(d *wire.Decoder) { DecodePlayerID(d, "player") }},
		{"player overflow", []byte{0x80, 0x80, 0x04}, func(d *wire.Decoder) { DecodePlayerID(d, "player") }},
		{"tier", []byte{27, 0}, func(d *wire.Decoder) { DecodeSceneID(d, "scene") }},
		{"realm kind", []byte{3}, func(d *wire.Decoder) { DecodeRealmID(d, "realm") }},
		{"realm name", []byte{1, 3, 'w', 'w', 'w'}, func(d *wire.Decoder) { DecodeRealmID(d, "realm") }},
		{"region", []byte{6}, func(d *wire.Decoder) { DecodeRegionID(d, "region") }},
		{"cohort", []byte{5}, func(d *wire.Decoder) { DecodeCohortID(d, "cohort") }},
		{"zero token", []byte{0}, func(d *wire.Decoder) { DecodeSessionToken(d, "token") }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			decoder := wire.NewDecoder(test.data)
			test.decode(decoder)
			if !errors.Is(decoder.Err(), wire.ErrUnknownVariant) {
				t.Errorf("error = %v, want ErrUnknownVariant", decoder.Err())
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := []interface{ Validate() error }{
		CloudServer(1),
		PublicDefaultRealm(),
		NamedRealm("dev-1"),
		TemporaryRealm(InvitationID{Server: 3, Number: 9}),
		ArenaID{Realm: NamedRealm("dev-1"), Scene: SceneID{Tier: 26}},
		Oceania,
		CohortID(4),
		Tablet,
		Renewed,
		Weekly,
	}
	for _, value := range valid {
		if err := value.Validate(); err != nil {
			t.Errorf("%v: Validate: %v", value, err)
		}
	}

	invalidValues := []interface{ Validate() error }{
		ServerID{Kind: Cloud},
		ServerID{Kind: 2, Number: 1},
		NamedRealm("WWW"),
		NamedRealm(""),
		RealmID{Kind: PublicDefault, Name: "x"},
		RealmID{Kind: 3},
		TemporaryRealm(InvitationID{}),
		ArenaID{Realm: PublicDefaultRealm(), Scene: SceneID{Tier: 27}},
		RegionID(6),
		CohortID(0),
		UserAgentID(8),
		LifecycleID(2),
		PeriodID(3),
	}
	for _, value := range invalidValues {
		err := value.Validate()
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("%#v: Validate = %v, want ErrInvalid", value, err)
		}
	}
}
