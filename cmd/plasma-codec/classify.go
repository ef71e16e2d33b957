// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/plasma/cmd/plasma-codec/cli"
	"github.com/bureau-foundation/plasma/lib/names"
)

// errModerationDisabled is returned by loadClassifier in builds
// without the moderation capability.
var errModerationDisabled = errors.New("built without moderation (nomoderation tag): text cannot be classified")

// textClassifier is what commands need from a compiled ruleset.
type textClassifier interface {
	names.Classifier
	Explain(text string, maxWidth int) string
	Version() string
	Fingerprint() string
}

var limits = []names.Limit{
	names.PlayerAlias,
	names.TeamName,
	names.NickName,
	names.RealmName,
	names.ServerName,
	names.ChatMessage,
	names.Diagnostic,
}

func parseLimit(name string) (names.Limit, error) {
	for _, limit := range limits {
		if limit.Name == name {
			return limit, nil
		}
	}
	known := make([]string, len(limits))
	for i, limit := range limits {
		known[i] = limit.Name
	}
	return names.Limit{}, fmt.Errorf("unknown limit %q (known: %s)", name, strings.Join(known, ", "))
}

type classifyParams struct {
	cli.JSONOutput
	Limit   string `flag:"limit,l" desc:"text limit: player_alias, team_name, nick_name, realm_name, server_name, chat_message, diagnostic" default:"chat_message"`
	Explain bool   `flag:"explain,e" desc:"show the rule behind each verdict"`
}

type classification struct {
	Text      string        `json:"text"`
	Verdict   names.Verdict `json:"verdict"`
	Truncated bool          `json:"truncated,omitempty"`
	Reason    string        `json:"reason,omitempty"`
}

func (a *app) classifyCommand() *cli.Command {
	var params classifyParams

	return &cli.Command{
		Name:    "classify",
		Summary: "Classify text against the moderation ruleset",
		Description: `Classify each argument, or each line of stdin, as a bounded text
field of the given limit. Text longer than the limit is truncated on a
UTF-8 boundary and the prefix is classified.

The ruleset is moderation.ruleset from the config, or the built-in
ruleset.`,
		Usage: "plasma-codec classify [--limit NAME] [--explain] [--json] [TEXT...]",
		Examples: []cli.Example{
			{
				Description: "Check a player alias",
				Command:     "plasma-codec classify --limit player_alias 'xX_sniper_Xx'",
			},
			{
				Description: "Classify chat lines from a file with reasons",
				Command:     "plasma-codec classify --explain < chat.txt",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("classify", &params)
		},
		Run: func(args []string) error {
			limit, err := parseLimit(params.Limit)
			if err != nil {
				return err
			}
			classifier, err := a.loadClassifier()
			if err != nil {
				return err
			}
			a.logger.Debug("classifier loaded",
				"ruleset", classifier.Version(), "fingerprint", classifier.Fingerprint())

			texts := args
			if len(texts) == 0 {
				texts, err = a.readLines()
				if err != nil {
					return err
				}
			}

			results := make([]classification, 0, len(texts))
			for _, raw := range texts {
				text := names.New(limit, raw, classifier)
				result := classification{
					Text:      text.String(),
					Verdict:   text.Verdict(),
					Truncated: text.Truncated(),
				}
				if params.Explain {
					result.Reason = classifier.Explain(text.String(), limit.Width)
				}
				results = append(results, result)
			}

			if done, err := params.EmitJSON(a.stdout, results); done {
				return err
			}
			tw := tabwriter.NewWriter(a.stdout, 2, 0, 2, ' ', 0)
			for _, result := range results {
				line := result.Verdict.String()
				if result.Truncated {
					line += " (truncated)"
				}
				line += "\t" + fmt.Sprintf("%q", result.Text)
				if result.Reason != "" {
					line += "\t" + result.Reason
				}
				fmt.Fprintln(tw, line)
			}
			return tw.Flush()
		},
	}
}

// readLines reads stdin as lines.
func (a *app) readLines() ([]string, error) {
	data, _, err := a.readInput(nil, false)
	if err != nil {
		return nil, err
	}
	return splitLines(data)
}

// splitLines splits data into lines, dropping a trailing carriage
// return from each.
func splitLines(data []byte) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}
