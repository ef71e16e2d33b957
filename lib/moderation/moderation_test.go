// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package moderation

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/plasma/lib/names"
)

func defaultClassifier(t *testing.T) *Classifier {
	t.Helper()
	classifier, err := NewLoader().LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	return classifier
}

func TestClassify(t *testing.T) {
	classifier := defaultClassifier(t)
	tests := []struct {
		text string
		want names.Verdict
	}{
		{"", names.Clean},
		{"hello", names.Clean},
		{"Good game, well played", names.Clean},
		{"classic", names.Clean},
		{"Scunthorpe", names.Clean},
		{"what the fuck", names.Profane},
		{"WHAT THE FUCK", names.Profane},
		{"sh1t", names.Profane},
		{"f u c k", names.Profane},
		{"s.h.i.t", names.Profane},
		{"ｆｕｃｋ", names.Profane},
		{"fück", names.Profane},
		{"you ass", names.Profane},
		{"a55", names.Profane},
		{"mail me at someone@example.com", names.ContainsPII},
		{"MAIL ME AT SOMEONE@EXAMPLE.COM", names.ContainsPII},
		{"call 555 123 4567", names.ContainsPII},
		{"I live at 12 Main Street", names.ContainsPII},
	}
	for _, test := range tests {
		if got := classifier.Classify(test.text); got != test.want {
			t.Errorf("Classify(%q) = %s, want %s (%s)", test.text, got, test.want, classifier.Explain(test.text, 0))
		}
	}
}

func TestClassifyPrecedence(t *testing.T) {
	classifier := defaultClassifier(t)

	// PII outranks profanity.
	if got := classifier.Classify("shit, email me: x@y.org"); got != names.ContainsPII {
		t.Errorf("PII + profanity = %s, want contains_pii", got)
	}
	// Profanity outranks width.
	if got := classifier.ClassifyWithin("fuckfuckfuck", 4); got != names.Profane {
		t.Errorf("profane + wide = %s, want profane", got)
	}
}

func TestClassifyWithinWidth(t *testing.T) {
	classifier := defaultClassifier(t)

	// Fullwidth letters occupy two cells each.
	if got := classifier.ClassifyWithin("ＡＢＣＤＥ", 8); got != names.TooWide {
		t.Errorf("ClassifyWithin(fullwidth, 8) = %s, want too_wide", got)
	}
	if got := classifier.ClassifyWithin("ＡＢＣＤ", 8); got != names.Clean {
		t.Errorf("ClassifyWithin(fullwidth, 8) = %s, want clean", got)
	}
	if got := classifier.ClassifyWithin("ＡＢＣＤＥ", 0); got != names.Clean {
		t.Errorf("ClassifyWithin(fullwidth, 0) = %s, want clean with no ruleset width", got)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	first := defaultClassifier(t)
	second := defaultClassifier(t)
	inputs := []string{"hello", "sh1t", "x@y.org", "ＡＢＣＤＥ", "ok"}
	for _, input := range inputs {
		for range 3 {
			if first.ClassifyWithin(input, 6) != second.ClassifyWithin(input, 6) {
				t.Fatalf("Classify(%q) differs between classifiers", input)
			}
		}
	}
}

func TestClassifierWithNames(t *testing.T) {
	classifier := defaultClassifier(t)
	alias := names.New(names.PlayerAlias, "shitlord_supreme", classifier)
	if alias.String() != "shitlord_sup" || !alias.Truncated() {
		t.Errorf("alias = %q truncated=%v", alias.String(), alias.Truncated())
	}
	if alias.Verdict() != names.Profane {
		t.Errorf("alias verdict = %s, want profane", alias.Verdict())
	}
}

func TestFingerprint(t *testing.T) {
	ruleset, err := DefaultRuleset()
	if err != nil {
		t.Fatalf("DefaultRuleset: %v", err)
	}
	first, err := ruleset.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if len(first) != 64 {
		t.Errorf("Fingerprint length %d, want 64 hex digits", len(first))
	}

	ruleset.Version = "changed"
	second, err := ruleset.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if first == second {
		t.Error("Fingerprint did not change with the version")
	}
}

func TestLoadFileFormatsAgree(t *testing.T) {
	directory := t.TempDir()
	yamlPath := filepath.Join(directory, "rules.yaml")
	jsoncPath := filepath.Join(directory, "rules.jsonc")

	yamlRules := `
version: "test-1"
max_width: 6
substitutions: {"0": "o"}
words: [boo]
substrings: [zap]
pii_patterns:
  - name: digits
    pattern: '\d{6}'
`
	jsoncRules := `{
  // Same rules as the YAML file.
  "version": "test-1",
  "max_width": 6,
  "substitutions": {"0": "o"},
  "words": ["boo"],
  "substrings": ["zap"],
  "pii_patterns": [
    {"name": "digits", "pattern": "\\d{6}"},
  ],
}`
	if err := os.WriteFile(yamlPath, []byte(yamlRules), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(jsoncPath, []byte(jsoncRules), 0o644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	loader := NewLoader()
	loader.SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))

	fromYAML, err := loader.LoadFile(yamlPath)
	if err != nil {
		t.Fatalf("LoadFile(yaml): %v", err)
	}
	fromJSONC, err := loader.Load(jsoncPath)
	if err != nil {
		t.Fatalf("Load(jsonc): %v", err)
	}
	if fromYAML.Fingerprint() != fromJSONC.Fingerprint() {
		t.Errorf("fingerprints differ: %s vs %s", fromYAML.Fingerprint(), fromJSONC.Fingerprint())
	}
	if !strings.Contains(logs.String(), "version=test-1") {
		t.Errorf("loader log missing version: %s", logs.String())
	}

	tests := map[string]names.Verdict{
		"b00":     names.Profane,
		"zapped":  names.Profane,
		"123456":  names.ContainsPII,
		"abcdefg": names.TooWide,
		"abc":     names.Clean,
	}
	for input, want := range tests {
		if got := fromJSONC.Classify(input); got != want {
			t.Errorf("Classify(%q) = %s, want %s", input, got, want)
		}
	}
}

func TestRulesetValidate(t *testing.T) {
	tests := map[string]string{
		"missing version": "words: [x]\n",
		"unknown key":     "version: v\nwordz: [x]\n",
		"bad pattern":     "version: v\npii_patterns: [{name: p, pattern: '('}]\n",
		"long substitute": "version: v\nsubstitutions: {ab: c}\n",
		"unnormalized":    "version: v\nwords: [Boo]\n",
		"negative width":  "version: v\nmax_width: -1\n",
		"unnamed pattern": "version: v\npii_patterns: [{pattern: 'x'}]\n",
		"empty substring": "version: v\nsubstrings: ['']\n",
	}
	for name, document := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseRulesetYAML([]byte(document)); err == nil {
				t.Errorf("ParseRulesetYAML accepted %q", document)
			}
		})
	}
}
