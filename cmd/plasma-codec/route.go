// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/plasma/cmd/plasma-codec/cli"
	"github.com/bureau-foundation/plasma/lib/ids"
)

type routeParams struct {
	From string `flag:"from" desc:"region the visitor connects from (required)"`
}

func (a *app) routeCommand() *cli.Command {
	var params routeParams

	return &cli.Command{
		Name:    "route",
		Summary: "Rank server regions by distance from a visitor",
		Description: `Print each candidate server region with its distance rank from the
visitor's region, 0 for the same region up to 3 for the far side of
the world. The region a visitor would be routed to is marked; ties go
to the earlier candidate. With no candidates every region is ranked.`,
		Usage: "plasma-codec route --from REGION [CANDIDATE...]",
		Examples: []cli.Example{
			{
				Description: "Pick a server region for a visitor in Europe",
				Command:     "plasma-codec route --from Europe NorthAmerica Asia Africa",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("route", &params)
		},
		Run: func(args []string) error {
			if params.From == "" {
				return fmt.Errorf("--from is required")
			}
			from, err := ids.ParseRegionID(params.From)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			candidates := ids.Regions
			if len(args) > 0 {
				candidates = make([]ids.RegionID, 0, len(args))
				for _, arg := range args {
					region, err := ids.ParseRegionID(arg)
					if err != nil {
						return err
					}
					candidates = append(candidates, region)
				}
			}
			closest, _ := from.Closest(candidates)

			tw := tabwriter.NewWriter(a.stdout, 2, 0, 2, ' ', 0)
			marked := false
			for _, candidate := range candidates {
				mark := ""
				if candidate == closest && !marked {
					mark, marked = "closest", true
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\n", candidate, from.Distance(candidate), mark)
			}
			return tw.Flush()
		},
	}
}
