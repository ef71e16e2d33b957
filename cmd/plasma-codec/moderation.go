// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !nomoderation

package main

import "github.com/bureau-foundation/plasma/lib/moderation"

const moderationEnabled = true

// loadClassifier compiles the configured ruleset, or the built-in one.
func (a *app) loadClassifier() (textClassifier, error) {
	loader := moderation.NewLoader()
	loader.SetLogger(a.logger)
	classifier, err := loader.Load(a.config.Moderation.Ruleset)
	if err != nil {
		return nil, err
	}
	return classifier, nil
}
