// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package moderation classifies player-supplied text against a
// versioned ruleset.
//
// A [Ruleset] lists whole-token words, in-token substrings, character
// substitutions that undo common obfuscation ("sh1t"), and regular
// expressions for personal information. A [Classifier] compiled from
// a ruleset implements names.Classifier:
//
//	loader := moderation.NewLoader()
//	classifier, err := loader.Load("")  // built-in ruleset
//	alias := names.New(names.PlayerAlias, raw, classifier)
//
// Classification is pure and deterministic. Text is normalized before
// matching: NFKD decomposition, removal of combining marks, NFC
// recomposition, Unicode case folding, then the ruleset's
// substitutions. Personal information is checked before
// substitutions so digit sequences survive. When several outcomes
// apply the verdict is, in order of precedence, ContainsPII, Profane,
// TooWide, Clean. Display width is measured in terminal cells on the
// original text.
//
// Nothing in the message schema depends on this package. Binaries
// built without it still decode, validate and forward text classified
// elsewhere.
package moderation
