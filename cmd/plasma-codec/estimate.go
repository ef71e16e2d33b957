// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/plasma/cmd/plasma-codec/cli"
	"github.com/bureau-foundation/plasma/lib/cardinality"
)

type estimateParams struct {
	Numeric  bool     `flag:"numeric,n" desc:"keys are decimal 64-bit numbers (visitor IDs)"`
	Snapshot bool     `flag:"snapshot" desc:"print the estimator snapshot instead of the count"`
	Merge    []string `flag:"merge" desc:"snapshots to merge in before counting"`
}

func (a *app) estimateCommand() *cli.Command {
	var params estimateParams

	return &cli.Command{
		Name:    "estimate",
		Summary: "Estimate the number of distinct lines",
		Description: `Count distinct keys, one per line of the file argument or stdin,
with the same HyperLogLog estimator analytics snapshots carry. Empty
lines are skipped.

--snapshot prints the estimator state as text; pass such text back
with --merge to combine counts from several inputs.`,
		Usage: "plasma-codec estimate [--numeric] [--snapshot] [--merge SNAPSHOT]... [file]",
		Examples: []cli.Example{
			{
				Description: "Count distinct visitors across two days",
				Command:     "plasma-codec estimate --merge \"$(plasma-codec estimate --snapshot monday.txt)\" tuesday.txt",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("estimate", &params)
		},
		Run: func(args []string) error {
			data, remaining, err := a.readInput(args, false)
			if err != nil {
				return err
			}
			if len(remaining) > 0 {
				return fmt.Errorf("unexpected argument %q", remaining[0])
			}

			var estimator cardinality.Estimator
			for _, text := range params.Merge {
				var snapshot cardinality.Snapshot
				if err := snapshot.UnmarshalText([]byte(text)); err != nil {
					return fmt.Errorf("--merge: %w", err)
				}
				estimator.Merge(snapshot)
			}

			lines, err := splitLines(data)
			if err != nil {
				return err
			}
			for number, line := range lines {
				if line == "" {
					continue
				}
				if !params.Numeric {
					estimator.ObserveString(line)
					continue
				}
				key, err := strconv.ParseUint(line, 10, 64)
				if err != nil {
					return fmt.Errorf("line %d: %w", number+1, err)
				}
				estimator.ObserveUint64(key)
			}

			if params.Snapshot {
				text, err := estimator.Snapshot().MarshalText()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.stdout, string(text))
				return err
			}
			_, err = fmt.Fprintln(a.stdout, estimator.Estimate())
			return err
		},
	}
}
