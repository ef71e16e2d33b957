// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package moderation

import (
	"bytes"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/jsonc"
	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/plasma/lib/codec"
)

//go:embed default_ruleset.yaml
var defaultRulesetYAML []byte

// Ruleset is the data a Classifier is compiled from. Its Version is
// reported alongside every moderation result so a verdict can be
// traced to the rules that produced it.
type Ruleset struct {
	Version       string            `yaml:"version" json:"version"`
	MaxWidth      int               `yaml:"max_width" json:"max_width"`
	Substitutions map[string]string `yaml:"substitutions" json:"substitutions"`
	Words         []string          `yaml:"words" json:"words"`
	Substrings    []string          `yaml:"substrings" json:"substrings"`
	PIIPatterns   []PIIPattern      `yaml:"pii_patterns" json:"pii_patterns"`
}

// PIIPattern is a named regular expression (RE2 syntax) matched
// against case-folded text.
type PIIPattern struct {
	Name    string `yaml:"name" json:"name"`
	Pattern string `yaml:"pattern" json:"pattern"`
}

// DefaultRuleset returns the built-in ruleset.
func DefaultRuleset() (*Ruleset, error) {
	ruleset, err := ParseRulesetYAML(defaultRulesetYAML)
	if err != nil {
		return nil, fmt.Errorf("built-in ruleset: %w", err)
	}
	return ruleset, nil
}

// LoadRuleset reads a ruleset file. Files ending in .json or .jsonc
// are parsed as JSON with comments and trailing commas allowed;
// anything else is YAML.
func LoadRuleset(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ruleset: %w", err)
	}
	var ruleset *Ruleset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		ruleset, err = ParseRulesetJSONC(data)
	default:
		ruleset, err = ParseRulesetYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ruleset, nil
}

// ParseRulesetYAML parses and validates a YAML ruleset. Unknown keys
// are rejected so a misspelled section does not silently disable a
// rule.
func ParseRulesetYAML(data []byte) (*Ruleset, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var ruleset Ruleset
	if err := decoder.Decode(&ruleset); err != nil {
		return nil, fmt.Errorf("parsing ruleset YAML: %w", err)
	}
	if err := ruleset.Validate(); err != nil {
		return nil, err
	}
	return &ruleset, nil
}

// ParseRulesetJSONC parses and validates a JSON ruleset that may
// contain comments and trailing commas.
func ParseRulesetJSONC(data []byte) (*Ruleset, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.DisallowUnknownFields()
	var ruleset Ruleset
	if err := decoder.Decode(&ruleset); err != nil {
		return nil, fmt.Errorf("parsing ruleset JSON: %w", err)
	}
	if err := ruleset.Validate(); err != nil {
		return nil, err
	}
	return &ruleset, nil
}

// Validate reports every problem with the ruleset at once.
func (r *Ruleset) Validate() error {
	var errs []error
	if r.Version == "" {
		errs = append(errs, errors.New("version is required"))
	}
	if r.MaxWidth < 0 {
		errs = append(errs, fmt.Errorf("max_width must not be negative, got %d", r.MaxWidth))
	}
	for from := range r.Substitutions {
		if utf8.RuneCountInString(from) != 1 {
			errs = append(errs, fmt.Errorf("substitution key %q must be a single character", from))
		}
	}
	for _, word := range r.Words {
		if word == "" || word != normalize(word) {
			errs = append(errs, fmt.Errorf("word %q must be non-empty and already normalized", word))
		}
	}
	for _, substring := range r.Substrings {
		if substring == "" || substring != normalize(substring) {
			errs = append(errs, fmt.Errorf("substring %q must be non-empty and already normalized", substring))
		}
	}
	for i, pattern := range r.PIIPatterns {
		if pattern.Name == "" {
			errs = append(errs, fmt.Errorf("pii_patterns[%d]: name is required", i))
		}
		if _, err := regexp.Compile(pattern.Pattern); err != nil {
			errs = append(errs, fmt.Errorf("pii_patterns[%d] (%s): %w", i, pattern.Name, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid ruleset: %w", errors.Join(errs...))
	}
	return nil
}

// Fingerprint returns a BLAKE3 digest of the ruleset's canonical CBOR
// encoding, in hex. Two rulesets with the same content have the same
// fingerprint regardless of the file format or key order they were
// loaded from.
func (r *Ruleset) Fingerprint() (string, error) {
	canonical, err := codec.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encoding ruleset: %w", err)
	}
	digest := blake3.Sum256(canonical)
	return hex.EncodeToString(digest[:]), nil
}
