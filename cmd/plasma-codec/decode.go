// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/plasma/cmd/plasma-codec/cli"
	"github.com/bureau-foundation/plasma/lib/envelope"
	"github.com/bureau-foundation/plasma/lib/plasma"
)

type decodeParams struct {
	Hex     bool `flag:"hex,x" desc:"treat input as hex"`
	Raw     bool `flag:"raw" desc:"input is a bare message payload, not an envelope"`
	Compact bool `flag:"compact,c" desc:"compact output (no indentation)"`
}

func (a *app) decodeCommand() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Convert a sealed envelope to a JSON message document",
		Description: `Open a sealed envelope and write its message as a JSON document.

The envelope's version tag is checked first; an envelope from another
protocol version is rejected whole. Then the checksum, the message
encoding and the kind are verified. A summary of the message is logged
to stderr.`,
		Usage: "plasma-codec decode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Decode an envelope file",
				Command:     "plasma-codec decode heartbeat.bin",
			},
			{
				Description: "Decode a hex-encoded bare payload",
				Command:     "echo '8103...' | plasma-codec decode --raw --hex",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("decode", &params)
		},
		Run: func(args []string) error {
			data, remaining, err := a.readInput(args, params.Hex)
			if err != nil {
				return err
			}
			if len(remaining) > 0 {
				return fmt.Errorf("unexpected argument %q", remaining[0])
			}

			m, err := a.decodeMessage(data, params.Raw)
			if err != nil {
				return err
			}
			a.logger.Info("decoded message", summarize(m)...)
			return a.writeJSON(plasma.NewDocument(m), params.Compact)
		},
	}
}

func (a *app) decodeMessage(data []byte, raw bool) (plasma.Message, error) {
	if raw {
		return plasma.Decode(plasma.Version, data)
	}
	options, err := a.envelopeOptions("")
	if err != nil {
		return nil, err
	}
	sealed, err := envelope.Unwrap(data, options)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("envelope",
		"kind", sealed.Kind,
		"compression", sealed.Compression,
		"size", sealed.Size,
		"checksum", sealed.Checksum,
	)
	return sealed.Message()
}
