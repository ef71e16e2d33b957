// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command tree behind plasma-codec: nested
// [Command] values with lazily built pflag sets, help rendering,
// typo suggestions for commands and flags, struct-tag flag binding
// ([FlagsFromParams]) and the logger commands share.
//
// Commands write help and diagnostics to the Command's Output, which
// defaults to stderr, so the tree can be driven from tests.
package cli
