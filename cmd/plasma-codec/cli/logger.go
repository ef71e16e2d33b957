// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates the structured logger commands write to
// stderr. A terminal gets slog.TextHandler; a pipe or file gets
// slog.JSONHandler. The level is Info, or Debug when PLASMA_DEBUG is
// set to anything but "" or "0".
func NewCommandLogger() *slog.Logger {
	return NewLogger(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), debugEnabled())
}

// NewLogger is NewCommandLogger with its inputs explicit.
func NewLogger(w io.Writer, terminal, debug bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		options.Level = slog.LevelDebug
	}
	if terminal {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}

func debugEnabled() bool {
	value := os.Getenv("PLASMA_DEBUG")
	return value != "" && value != "0"
}
