// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/plasma/cmd/plasma-codec/cli"
	"github.com/bureau-foundation/plasma/lib/codec"
	"github.com/bureau-foundation/plasma/lib/envelope"
	"github.com/bureau-foundation/plasma/lib/plasma"
)

type inspectParams struct {
	Hex bool `flag:"hex,x" desc:"treat input as hex"`
}

func (a *app) inspectCommand() *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Show the structure of a sealed envelope",
		Description: `Print an envelope in CBOR diagnostic notation (RFC 8949 section 8),
then its header fields and the leading payload bytes.

Inspection does not verify the checksum or decode the message; use
decode for that. It does check the version tag.`,
		Usage: "plasma-codec inspect [--hex] [file]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("inspect", &params)
		},
		Run: func(args []string) error {
			data, remaining, err := a.readInput(args, params.Hex)
			if err != nil {
				return err
			}
			if len(remaining) > 0 {
				return fmt.Errorf("unexpected argument %q", remaining[0])
			}

			diagnostic, err := codec.Diagnose(data)
			if err != nil {
				return fmt.Errorf("not CBOR: %w", err)
			}
			fmt.Fprintln(a.stdout, diagnostic)

			options, err := a.envelopeOptions("")
			if err != nil {
				return err
			}
			sealed, err := envelope.Unwrap(data, options)
			if err != nil {
				return err
			}
			return a.printEnvelope(sealed)
		},
	}
}

// payloadPreview is how many leading payload bytes inspect shows.
const payloadPreview = 32

func (a *app) printEnvelope(sealed envelope.Envelope) error {
	preview := sealed.Payload
	suffix := ""
	if len(preview) > payloadPreview {
		preview, suffix = preview[:payloadPreview], "..."
	}

	tw := tabwriter.NewWriter(a.stdout, 2, 0, 2, ' ', 0)
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "version\t%d\n", sealed.Version)
	fmt.Fprintf(tw, "kind\t%s (%s)\n", sealed.Kind, sealed.Kind.Direction())
	fmt.Fprintf(tw, "compression\t%s\n", sealed.Compression)
	fmt.Fprintf(tw, "size\t%d bytes (%d on the wire)\n", sealed.Size, len(sealed.Payload))
	fmt.Fprintf(tw, "checksum\t%s\n", sealed.Checksum)
	fmt.Fprintf(tw, "payload\t%s%s\n", hex.EncodeToString(preview), suffix)
	if sealed.Compression == envelope.CompressionNone {
		if kind, err := plasma.PeekKind(sealed.Payload); err == nil && kind != sealed.Kind {
			fmt.Fprintf(tw, "warning\tpayload kind is %s\n", kind)
		}
	}
	return tw.Flush()
}
