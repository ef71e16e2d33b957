// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package names

// Limit bounds a kind of text field. Bytes is the wire capacity in
// UTF-8 bytes. Width, when non-zero, is the largest display width in
// terminal cells before the text is judged TooWide.
type Limit struct {
	Name  string
	Bytes int
	Width int
}

var (
	PlayerAlias = Limit{Name: "player_alias", Bytes: 12, Width: 14}
	TeamName    = Limit{Name: "team_name", Bytes: 12, Width: 8}
	NickName    = Limit{Name: "nick_name", Bytes: 12}
	RealmName   = Limit{Name: "realm_name", Bytes: 12}
	ServerName  = Limit{Name: "server_name", Bytes: 28}
	ChatMessage = Limit{Name: "chat_message", Bytes: 150}
	Diagnostic  = Limit{Name: "diagnostic", Bytes: 60}
)

// Truncate returns the longest prefix of s that fits in l.Bytes
// without splitting a UTF-8 sequence, and whether anything was cut.
// s must already be valid UTF-8.
func (l Limit) Truncate(s string) (string, bool) {
	if len(s) <= l.Bytes {
		return s, false
	}
	cut := l.Bytes
	// Back up over continuation bytes (10xxxxxx) to a rune start.
	for cut > 0 && s[cut]&0xc0 == 0x80 {
		cut--
	}
	return s[:cut], true
}
