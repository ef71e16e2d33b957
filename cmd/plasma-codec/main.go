// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/bureau-foundation/plasma/cmd/plasma-codec/cli"
	"github.com/bureau-foundation/plasma/lib/clock"
	"github.com/bureau-foundation/plasma/lib/config"
	"github.com/bureau-foundation/plasma/lib/version"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		// Commands that print their own diagnosis return an exit code
		// without a message.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	configPath, args, err := extractConfigFlag(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	a := &app{
		config:   cfg,
		logger:   cli.NewCommandLogger(),
		clock:    clock.Real(),
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		terminal: term.IsTerminal(int(os.Stdout.Fd())),
	}
	a.logger.Debug("starting",
		"version", version.Short(), "commit", version.Commit(),
		"environment", cfg.Environment)
	return a.root().Execute(args)
}

// extractConfigFlag removes a leading --config flag, which applies to
// every subcommand and so is parsed before dispatch.
func extractConfigFlag(args []string) (string, []string, error) {
	if len(args) == 0 {
		return "", args, nil
	}
	if value, ok := strings.CutPrefix(args[0], "--config="); ok {
		return value, args[1:], nil
	}
	if args[0] == "--config" {
		if len(args) < 2 {
			return "", nil, fmt.Errorf("flag --config requires a value")
		}
		return args[1], args[2:], nil
	}
	return "", args, nil
}

// loadConfig loads path, or PLASMA_CONFIG when path is empty, or the
// defaults when neither is set.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case path != "":
		cfg, err = config.LoadFile(path)
	case os.Getenv("PLASMA_CONFIG") != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
