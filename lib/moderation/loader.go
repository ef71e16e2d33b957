// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package moderation

import (
	"fmt"
	"log/slog"
)

// Loader builds Classifiers from the built-in ruleset or from files.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader that logs nothing.
func NewLoader() *Loader {
	return &Loader{}
}

// SetLogger enables logging of which ruleset was loaded.
func (l *Loader) SetLogger(logger *slog.Logger) {
	l.logger = logger
}

func (l *Loader) log(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Info(msg, args...)
	}
}

// Load compiles the ruleset at path, or the built-in ruleset when
// path is empty.
func (l *Loader) Load(path string) (*Classifier, error) {
	if path == "" {
		return l.LoadDefault()
	}
	return l.LoadFile(path)
}

// LoadDefault compiles the built-in ruleset.
func (l *Loader) LoadDefault() (*Classifier, error) {
	ruleset, err := DefaultRuleset()
	if err != nil {
		return nil, err
	}
	return l.compile(ruleset, "built-in")
}

// LoadFile compiles the ruleset in the YAML or JSONC file at path.
func (l *Loader) LoadFile(path string) (*Classifier, error) {
	l.log("loading moderation ruleset", "path", path)
	ruleset, err := LoadRuleset(path)
	if err != nil {
		return nil, err
	}
	return l.compile(ruleset, path)
}

func (l *Loader) compile(ruleset *Ruleset, source string) (*Classifier, error) {
	classifier, err := NewClassifier(ruleset)
	if err != nil {
		return nil, fmt.Errorf("compiling ruleset from %s: %w", source, err)
	}
	l.log("loaded moderation ruleset",
		"source", source,
		"version", classifier.Version(),
		"fingerprint", classifier.Fingerprint(),
		"words", len(ruleset.Words),
		"pii_patterns", len(ruleset.PIIPatterns),
	)
	return classifier, nil
}
