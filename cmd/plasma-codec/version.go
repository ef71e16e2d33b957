// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/bureau-foundation/plasma/cmd/plasma-codec/cli"
	"github.com/bureau-foundation/plasma/lib/plasma"
	"github.com/bureau-foundation/plasma/lib/version"
)

func (a *app) versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func(args []string) error {
			features := []string{"lz4", "zstd"}
			if moderationEnabled {
				features = append(features, "moderation")
			}
			_, err := fmt.Fprintf(a.stdout, "plasma-codec %s\n",
				version.Full(uint16(plasma.Version), features...))
			return err
		},
	}
}
