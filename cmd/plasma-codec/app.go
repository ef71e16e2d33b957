// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"
	"log/slog"

	"github.com/bureau-foundation/plasma/cmd/plasma-codec/cli"
	"github.com/bureau-foundation/plasma/lib/clock"
	"github.com/bureau-foundation/plasma/lib/config"
	"github.com/bureau-foundation/plasma/lib/envelope"
	"github.com/bureau-foundation/plasma/lib/plasma"
)

// app carries what every command needs. Tests build one around
// buffers and a fake clock.
type app struct {
	config *config.Config
	logger *slog.Logger
	clock  clock.Clock
	stdin  io.Reader
	stdout io.Writer
	// terminal reports whether stdout is a terminal. Binary output is
	// hex-encoded there.
	terminal bool
}

func (a *app) root() *cli.Command {
	return &cli.Command{
		Name:    "plasma-codec",
		Summary: "Encode, decode and inspect Plasma protocol messages",
		Description: `Encode, decode and inspect Plasma protocol messages.

Messages are written as JSON documents of the form
  {"kind": "heartbeat", "message": {...}}
and travel as sealed envelopes: a CBOR frame carrying the protocol
version, the message kind, the compression and a checksum around the
binary message payload.

Global flags (before the command):
  --config PATH   configuration file (default: $PLASMA_CONFIG)`,
		Subcommands: []*cli.Command{
			a.idCommand(),
			a.classifyCommand(),
			a.encodeCommand(),
			a.decodeCommand(),
			a.inspectCommand(),
			a.estimateCommand(),
			a.routeCommand(),
			a.versionCommand(),
		},
	}
}

// constraints returns the validation constraints from the config.
// config.Validate has already checked the skew parses.
func (a *app) constraints() plasma.Constraints {
	skew, err := a.config.Protocol.Skew()
	if err != nil {
		skew = plasma.DefaultSkew
	}
	return plasma.Constraints{Clock: a.clock, Skew: skew}
}

// envelopeOptions returns envelope options from the config, with
// compression overridden when override is non-empty.
func (a *app) envelopeOptions(override string) (envelope.Options, error) {
	name := a.config.Protocol.Compression
	if override != "" {
		name = override
	}
	compression, err := envelope.ParseCompression(name)
	if err != nil {
		return envelope.Options{}, err
	}
	return envelope.Options{
		Compression: compression,
		MaxPayload:  a.config.Protocol.MaxPayload,
		Logger:      a.logger,
	}, nil
}
