// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package names holds player-supplied text in a form that carries its
// own moderation outcome.
//
// A [Text] is a string bounded by a [Limit] (a byte capacity and, for
// names shown in tight UI slots, a display width) together with the
// [Verdict] a classifier assigned to it and a flag recording whether
// the input was truncated to fit. Text is built in one of two ways:
//
//   - [New] takes raw input, repairs invalid UTF-8, truncates to the
//     limit on a rune boundary and classifies the retained prefix.
//   - [Carried] rebuilds a Text whose verdict was assigned elsewhere
//     (a message received from another process). No classifier is
//     needed, so binaries built without moderation can still forward
//     classified text.
//
// The classifier is an interface ([Classifier]); this package does
// not depend on any implementation of it.
package names
