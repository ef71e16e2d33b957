// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/plasma/cmd/plasma-codec/cli"
	"github.com/bureau-foundation/plasma/lib/envelope"
	"github.com/bureau-foundation/plasma/lib/plasma"
)

type encodeParams struct {
	Hex         bool   `flag:"hex,x" desc:"write hex even when stdout is not a terminal"`
	Raw         bool   `flag:"raw" desc:"write the bare message payload instead of an envelope"`
	Compression string `flag:"compression" desc:"override protocol.compression (none, lz4, zstd, auto)"`
	NoClock     bool   `flag:"no-clock" desc:"do not check timestamps against the local clock"`
}

func (a *app) encodeCommand() *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Convert a JSON message document to a sealed envelope",
		Description: `Read a JSON or JSONC message document and write it as a sealed
envelope (or, with --raw, as the bare binary payload).

Text fields given as plain strings are classified with the configured
ruleset first. Text given as {"text", "verdict", "truncated"} objects
keeps its verdict. The message is then validated, including timestamps
against the local clock within protocol.clock_skew.`,
		Usage: "plasma-codec encode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Seal a heartbeat",
				Command:     "plasma-codec encode heartbeat.jsonc > heartbeat.bin",
			},
			{
				Description: "Round trip through the decoder",
				Command:     "plasma-codec encode warning.json | plasma-codec decode",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("encode", &params)
		},
		Run: func(args []string) error {
			data, remaining, err := a.readInput(args, false)
			if err != nil {
				return err
			}
			if len(remaining) > 0 {
				return fmt.Errorf("unexpected argument %q", remaining[0])
			}
			document, err := parseDocument(data)
			if err != nil {
				return err
			}

			output, err := a.encodeMessage(document.Message, params)
			if err != nil {
				return err
			}
			return a.writeBinary(output, params.Hex)
		},
	}
}

// encodeMessage classifies, validates and seals m.
func (a *app) encodeMessage(m plasma.Message, params encodeParams) ([]byte, error) {
	classifier, err := a.loadClassifier()
	switch {
	case err == nil:
		m = plasma.ClassifyPending(m, classifier)
	case errors.Is(err, errModerationDisabled):
		a.logger.Debug("moderation unavailable, only carried verdicts are accepted")
	default:
		return nil, err
	}

	constraints := a.constraints()
	if params.NoClock {
		constraints = plasma.Constraints{}
	}
	if err := plasma.Validate(constraints, m); err != nil {
		return nil, err
	}

	if params.Raw {
		return plasma.Encode(m)
	}
	options, err := a.envelopeOptions(params.Compression)
	if err != nil {
		return nil, err
	}
	return envelope.Seal(m, options)
}
