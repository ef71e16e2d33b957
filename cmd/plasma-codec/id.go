// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/plasma/cmd/plasma-codec/cli"
	"github.com/bureau-foundation/plasma/lib/entityid"
	"github.com/bureau-foundation/plasma/lib/ids"
)

type idParams struct {
	Count int `flag:"count,n" desc:"number of IDs to generate" default:"1"`
}

func (a *app) idCommand() *cli.Command {
	var params idParams

	return &cli.Command{
		Name:    "id",
		Summary: "Generate or parse entity IDs",
		Description: `Print new time-ordered entity IDs, one per line. IDs generated by
one invocation are strictly increasing even if the clock steps back.

"id parse" prints the issue time embedded in existing IDs. "id cohort"
prints the experiment cohort each visitor ID is assigned to.`,
		Usage: "plasma-codec id [--count N] | plasma-codec id parse ID... | plasma-codec id cohort VISITOR...",
		Subcommands: []*cli.Command{
			a.idParseCommand(),
			a.idCohortCommand(),
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("id", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			if params.Count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", params.Count)
			}
			generator := entityid.NewGenerator(a.clock, entityid.WithLogger(a.logger))
			for range params.Count {
				if _, err := fmt.Fprintln(a.stdout, generator.New()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) idParseCommand() *cli.Command {
	return &cli.Command{
		Name:    "parse",
		Summary: "Show the issue time of entity IDs",
		Usage:   "plasma-codec id parse ID...",
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("at least one ID required")
			}
			tw := tabwriter.NewWriter(a.stdout, 2, 0, 2, ' ', 0)
			for _, arg := range args {
				id, err := entityid.Parse(arg)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\n", id, id.Time().UTC().Format(time.RFC3339Nano))
			}
			return tw.Flush()
		},
	}
}

func (a *app) idCohortCommand() *cli.Command {
	return &cli.Command{
		Name:    "cohort",
		Summary: "Show the cohort of visitor IDs",
		Usage:   "plasma-codec id cohort VISITOR...",
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("at least one visitor ID required")
			}
			tw := tabwriter.NewWriter(a.stdout, 2, 0, 2, ' ', 0)
			for _, arg := range args {
				visitor, err := ids.ParseVisitorID(arg)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\n", visitor, ids.CohortOf(visitor))
			}
			return tw.Flush()
		},
	}
}
