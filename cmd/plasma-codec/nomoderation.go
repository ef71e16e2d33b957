// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build nomoderation

package main

const moderationEnabled = false

func (a *app) loadClassifier() (textClassifier, error) {
	return nil, errModerationDisabled
}
