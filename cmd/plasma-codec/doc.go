// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// plasma-codec is the operator tool for the Plasma protocol. It mints
// and parses entity IDs, classifies text against the moderation
// ruleset, turns JSON message documents into sealed envelopes and back,
// shows the CBOR structure of an envelope, and estimates distinct
// counts. It also reports the cohort a visitor is assigned to and the
// server region a visitor would be routed to.
//
// Configuration comes from the file named by --config or PLASMA_CONFIG;
// without either, built-in defaults apply. Logs go to stderr, at debug
// level when PLASMA_DEBUG is set.
//
// Binary output written to a terminal is hex-encoded. Built with the
// nomoderation tag, the tool carries existing verdicts but cannot
// classify new text.
package main
