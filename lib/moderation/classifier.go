// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package moderation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/bureau-foundation/plasma/lib/names"
)

// Classifier is a compiled Ruleset. It is immutable and safe for
// concurrent use.
type Classifier struct {
	version     string
	fingerprint string
	maxWidth    int
	substitute  *strings.Replacer
	words       map[string]struct{}
	substrings  []string
	pii         []compiledPattern
}

type compiledPattern struct {
	name   string
	regexp *regexp.Regexp
}

var _ names.Classifier = (*Classifier)(nil)

// NewClassifier compiles ruleset.
func NewClassifier(ruleset *Ruleset) (*Classifier, error) {
	if err := ruleset.Validate(); err != nil {
		return nil, err
	}
	fingerprint, err := ruleset.Fingerprint()
	if err != nil {
		return nil, err
	}

	classifier := &Classifier{
		version:     ruleset.Version,
		fingerprint: fingerprint,
		maxWidth:    ruleset.MaxWidth,
		words:       make(map[string]struct{}, len(ruleset.Words)),
		substrings:  append([]string(nil), ruleset.Substrings...),
	}

	pairs := make([]string, 0, 2*len(ruleset.Substitutions))
	for from, to := range ruleset.Substitutions {
		pairs = append(pairs, from, to)
	}
	classifier.substitute = strings.NewReplacer(pairs...)

	for _, word := range ruleset.Words {
		classifier.words[word] = struct{}{}
	}
	for _, pattern := range ruleset.PIIPatterns {
		compiled, err := regexp.Compile(pattern.Pattern)
		if err != nil {
			return nil, fmt.Errorf("pii pattern %s: %w", pattern.Name, err)
		}
		classifier.pii = append(classifier.pii, compiledPattern{name: pattern.Name, regexp: compiled})
	}
	return classifier, nil
}

// Version is the ruleset version this classifier was compiled from.
func (c *Classifier) Version() string { return c.version }

// Fingerprint is the ruleset's content digest (see Ruleset.Fingerprint).
func (c *Classifier) Fingerprint() string { return c.fingerprint }

// Classify is ClassifyWithin with the ruleset's default width limit.
func (c *Classifier) Classify(text string) names.Verdict {
	return c.ClassifyWithin(text, 0)
}

// ClassifyWithin classifies text. maxWidth bounds the display width
// in terminal cells; zero falls back to the ruleset's max_width, and
// a zero max_width disables the check. The empty string is Clean.
func (c *Classifier) ClassifyWithin(text string, maxWidth int) names.Verdict {
	if text == "" {
		return names.Clean
	}
	folded := normalize(text)
	if c.matchPII(folded) != "" {
		return names.ContainsPII
	}
	if c.profane(c.substitute.Replace(folded)) {
		return names.Profane
	}
	if maxWidth == 0 {
		maxWidth = c.maxWidth
	}
	if maxWidth > 0 && uniseg.StringWidth(text) > maxWidth {
		return names.TooWide
	}
	return names.Clean
}

// Explain returns the name of the rule that makes text something
// other than Clean, or "" if it is Clean. Intended for operator
// tooling, not for players.
func (c *Classifier) Explain(text string, maxWidth int) string {
	if text == "" {
		return ""
	}
	folded := normalize(text)
	if name := c.matchPII(folded); name != "" {
		return "pii:" + name
	}
	substituted := c.substitute.Replace(folded)
	for _, candidate := range candidates(substituted) {
		if _, ok := c.words[candidate]; ok {
			return "word:" + candidate
		}
		for _, substring := range c.substrings {
			if strings.Contains(candidate, substring) {
				return "substring:" + substring
			}
		}
	}
	if maxWidth == 0 {
		maxWidth = c.maxWidth
	}
	if width := uniseg.StringWidth(text); maxWidth > 0 && width > maxWidth {
		return fmt.Sprintf("width:%d>%d", width, maxWidth)
	}
	return ""
}

func (c *Classifier) matchPII(folded string) string {
	for _, pattern := range c.pii {
		if pattern.regexp.MatchString(folded) {
			return pattern.name
		}
	}
	return ""
}

func (c *Classifier) profane(substituted string) bool {
	for _, candidate := range candidates(substituted) {
		if _, ok := c.words[candidate]; ok {
			return true
		}
		for _, substring := range c.substrings {
			if strings.Contains(candidate, substring) {
				return true
			}
		}
	}
	return false
}

// candidates splits text into tokens of letters and digits, and adds
// the concatenation of every run of two or more single-character
// tokens so spaced-out words ("f u c k", "s.h.i.t") are matched too.
func candidates(text string) []string {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	result := tokens
	var run strings.Builder
	runLength := 0
	flush := func() {
		if runLength >= 2 {
			result = append(result, run.String())
		}
		run.Reset()
		runLength = 0
	}
	for _, token := range tokens {
		if len([]rune(token)) == 1 {
			run.WriteString(token)
			runLength++
			continue
		}
		flush()
	}
	flush()
	return result
}

// normalize maps visually equivalent text to one form: compatibility
// decomposition (fullwidth and ligature forms become ASCII), combining
// marks removed, recomposition, then Unicode case folding. A new
// transformer chain is built per call because chains carry state.
func normalize(text string) string {
	chain := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(chain, text)
	if err != nil {
		stripped = text
	}
	return cases.Fold().String(stripped)
}
