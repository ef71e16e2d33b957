// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/plasma/cmd/plasma-codec/cli"
	"github.com/bureau-foundation/plasma/lib/clock"
	"github.com/bureau-foundation/plasma/lib/codec"
	"github.com/bureau-foundation/plasma/lib/config"
	"github.com/bureau-foundation/plasma/lib/entityid"
	"github.com/bureau-foundation/plasma/lib/envelope"
	"github.com/bureau-foundation/plasma/lib/ids"
	"github.com/bureau-foundation/plasma/lib/plasma"
)

var epoch = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

type testApp struct {
	*app
	stdout *bytes.Buffer
	logs   *bytes.Buffer
}

func newTestApp(t *testing.T, stdin string) testApp {
	t.Helper()
	stdout := &bytes.Buffer{}
	logs := &bytes.Buffer{}
	return testApp{
		app: &app{
			config: config.Default(),
			logger: cli.NewLogger(logs, false, true),
			clock:  clock.Fake(epoch),
			stdin:  strings.NewReader(stdin),
			stdout: stdout,
		},
		stdout: stdout,
		logs:   logs,
	}
}

func (ta testApp) run(t *testing.T, args ...string) error {
	t.Helper()
	root := ta.root()
	root.Output = &bytes.Buffer{}
	return root.Execute(args)
}

func warningDocument(at time.Time) string {
	return fmt.Sprintf(`{
  // Comments and trailing commas are accepted.
  "kind": "warning",
  "message": {
    "server": "Cloud/3",
    "message": "server restarting in five minutes",
    "at": %d,
  },
}`, plasma.MillisOf(at))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, compression := range []string{"none", "lz4", "zstd", "auto"} {
		t.Run(compression, func(t *testing.T) {
			encoder := newTestApp(t, warningDocument(epoch))
			if err := encoder.run(t, "encode", "--compression", compression); err != nil {
				t.Fatalf("encode: %v", err)
			}

			decoder := newTestApp(t, encoder.stdout.String())
			if err := decoder.run(t, "decode", "--compact"); err != nil {
				t.Fatalf("decode: %v", err)
			}

			var document struct {
				Kind    string         `json:"kind"`
				Message map[string]any `json:"message"`
			}
			if err := json.Unmarshal(decoder.stdout.Bytes(), &document); err != nil {
				t.Fatalf("Unmarshal(%q): %v", decoder.stdout.String(), err)
			}
			if document.Kind != "warning" {
				t.Errorf("kind = %q, want warning", document.Kind)
			}
			if document.Message["server"] != "Cloud/3" {
				t.Errorf("server = %v, want Cloud/3", document.Message["server"])
			}
			text, ok := document.Message["message"].(map[string]any)
			if !ok {
				t.Fatalf("message = %v, want a classified text object", document.Message["message"])
			}
			if text["verdict"] != "clean" {
				t.Errorf("verdict = %v, want clean", text["verdict"])
			}
			if !strings.Contains(decoder.logs.String(), `"kind":"warning"`) {
				t.Errorf("decode did not log a summary: %s", decoder.logs.String())
			}
		})
	}
}

func TestEncodeRaw(t *testing.T) {
	encoder := newTestApp(t, warningDocument(epoch))
	if err := encoder.run(t, "encode", "--raw", "--hex"); err != nil {
		t.Fatalf("encode: %v", err)
	}
	payload, err := hex.DecodeString(strings.TrimSpace(encoder.stdout.String()))
	if err != nil {
		t.Fatalf("DecodeString: %v", err)
	}
	m, err := plasma.Decode(plasma.Version, payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.Kind() != plasma.KindWarning {
		t.Errorf("kind = %s, want warning", m.Kind())
	}

	decoder := newTestApp(t, encoder.stdout.String())
	if err := decoder.run(t, "decode", "--raw", "--hex"); err != nil {
		t.Fatalf("decode --raw: %v", err)
	}
}

func TestEncodeHexOnTerminal(t *testing.T) {
	encoder := newTestApp(t, warningDocument(epoch))
	encoder.terminal = true
	if err := encoder.run(t, "encode"); err != nil {
		t.Fatalf("encode: %v", err)
	}
	output := strings.TrimSpace(encoder.stdout.String())
	if _, err := hex.DecodeString(output); err != nil {
		t.Errorf("terminal output is not hex: %q", output)
	}

	decoder := newTestApp(t, output)
	if err := decoder.run(t, "decode", "-x"); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestEncodeChecksClock(t *testing.T) {
	future := epoch.Add(time.Hour)

	encoder := newTestApp(t, warningDocument(future))
	err := encoder.run(t, "encode")
	var invalid *plasma.ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("encode error = %v, want *plasma.ValidationError", err)
	}
	if invalid.Field != "at" {
		t.Errorf("field = %q, want at", invalid.Field)
	}

	encoder = newTestApp(t, warningDocument(future))
	if err := encoder.run(t, "encode", "--no-clock"); err != nil {
		t.Errorf("encode --no-clock: %v", err)
	}

	// The config's skew applies.
	encoder = newTestApp(t, warningDocument(epoch.Add(20*time.Second)))
	encoder.config.Protocol.ClockSkew = "10s"
	if err := encoder.run(t, "encode"); !errors.As(err, &invalid) {
		t.Errorf("encode with 10s skew error = %v, want *plasma.ValidationError", err)
	}
}

func TestEncodeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not json", "heartbeat"},
		{"unknown kind", `{"kind": "teleport", "message": {}}`},
		{"unknown field", `{"kind": "warning", "message": {"server": "Cloud/3", "colour": "red"}}`},
		{"missing message", `{"kind": "warning"}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			encoder := newTestApp(t, test.input)
			if err := encoder.run(t, "encode"); err == nil {
				t.Error("encode succeeded, want error")
			}
		})
	}
}

func TestDecodeRejectsOtherVersion(t *testing.T) {
	encoder := newTestApp(t, warningDocument(epoch))
	if err := encoder.run(t, "encode"); err != nil {
		t.Fatalf("encode: %v", err)
	}
	sealed, err := envelope.Unwrap(encoder.stdout.Bytes(), envelope.Options{})
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	sealed.Version = plasma.Version + 1
	data, err := codec.Marshal(sealed)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	decoder := newTestApp(t, string(data))
	if err := decoder.run(t, "decode"); !errors.Is(err, plasma.ErrUnsupportedVersion) {
		t.Errorf("decode error = %v, want ErrUnsupportedVersion", err)
	}
}

func TestDecodeRejectsBarePayload(t *testing.T) {
	encoder := newTestApp(t, warningDocument(epoch))
	if err := encoder.run(t, "encode", "--raw"); err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoder := newTestApp(t, encoder.stdout.String())
	if err := decoder.run(t, "decode"); err == nil {
		t.Error("decode of a bare payload as an envelope succeeded")
	}
}

func TestInspect(t *testing.T) {
	encoder := newTestApp(t, warningDocument(epoch))
	if err := encoder.run(t, "encode", "--compression", "none"); err != nil {
		t.Fatalf("encode: %v", err)
	}

	inspector := newTestApp(t, encoder.stdout.String())
	if err := inspector.run(t, "inspect"); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	output := inspector.stdout.String()
	for _, want := range []string{`2: "warning"`, "kind", "warning (to_server)", "compression", "none", "checksum"} {
		if !strings.Contains(output, want) {
			t.Errorf("inspect output missing %q:\n%s", want, output)
		}
	}
}

func TestClassify(t *testing.T) {
	if !moderationEnabled {
		t.Skip("built without moderation")
	}

	classifier := newTestApp(t, "")
	if err := classifier.run(t, "classify", "--json", "--explain", "hello", "mail me at someone@example.com"); err != nil {
		t.Fatalf("classify: %v", err)
	}
	var results []classification
	if err := json.Unmarshal(classifier.stdout.Bytes(), &results); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Verdict.String() != "clean" || results[0].Reason != "" {
		t.Errorf("hello = %+v, want clean with no reason", results[0])
	}
	if results[1].Verdict.String() != "contains_pii" || !strings.HasPrefix(results[1].Reason, "pii:") {
		t.Errorf("email = %+v, want contains_pii with a pii reason", results[1])
	}
}

func TestClassifyTruncates(t *testing.T) {
	if !moderationEnabled {
		t.Skip("built without moderation")
	}

	classifier := newTestApp(t, "an alias far too long for the field\n")
	if err := classifier.run(t, "classify", "--limit", "player_alias"); err != nil {
		t.Fatalf("classify: %v", err)
	}
	output := classifier.stdout.String()
	if !strings.Contains(output, "(truncated)") || !strings.Contains(output, `"an alias far"`) {
		t.Errorf("classify output = %q, want the 12-byte prefix marked truncated", output)
	}

	if err := newTestApp(t, "").run(t, "classify", "--limit", "planet_name", "x"); err == nil {
		t.Error("classify with unknown limit succeeded")
	}
}

func TestEstimate(t *testing.T) {
	var input strings.Builder
	for i := range 2000 {
		fmt.Fprintf(&input, "%d\n", i%1000)
	}

	estimator := newTestApp(t, input.String())
	if err := estimator.run(t, "estimate", "--numeric"); err != nil {
		t.Fatalf("estimate: %v", err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(estimator.stdout.String()))
	if err != nil {
		t.Fatalf("Atoi: %v", err)
	}
	if count < 950 || count > 1050 {
		t.Errorf("estimate = %d, want about 1000", count)
	}
}

func TestEstimateMerge(t *testing.T) {
	lines := func(from, to int) string {
		var builder strings.Builder
		for i := from; i <= to; i++ {
			fmt.Fprintf(&builder, "player-%d\n", i)
		}
		return builder.String()
	}

	first := newTestApp(t, lines(1, 500))
	if err := first.run(t, "estimate", "--snapshot"); err != nil {
		t.Fatalf("estimate --snapshot: %v", err)
	}
	snapshot := strings.TrimSpace(first.stdout.String())

	second := newTestApp(t, lines(250, 750))
	if err := second.run(t, "estimate", "--merge", snapshot); err != nil {
		t.Fatalf("estimate --merge: %v", err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(second.stdout.String()))
	if err != nil {
		t.Fatalf("Atoi: %v", err)
	}
	if count < 700 || count > 800 {
		t.Errorf("merged estimate = %d, want about 750", count)
	}

	if err := newTestApp(t, "").run(t, "estimate", "--merge", "not a snapshot"); err == nil {
		t.Error("estimate with a bad snapshot succeeded")
	}
}

func TestID(t *testing.T) {
	generator := newTestApp(t, "")
	if err := generator.run(t, "id", "--count", "3"); err != nil {
		t.Fatalf("id: %v", err)
	}
	lines := strings.Fields(generator.stdout.String())
	if len(lines) != 3 {
		t.Fatalf("got %d IDs, want 3", len(lines))
	}
	var previous entityid.ID
	for _, line := range lines {
		id, err := entityid.Parse(line)
		if err != nil {
			t.Fatalf("Parse(%q): %v", line, err)
		}
		if !id.Time().Equal(epoch) {
			t.Errorf("ID time = %s, want %s", id.Time(), epoch)
		}
		if entityid.Compare(previous, id) >= 0 {
			t.Errorf("IDs not increasing: %s then %s", previous, id)
		}
		previous = id
	}

	parser := newTestApp(t, "")
	if err := parser.run(t, "id", "parse", lines[0]); err != nil {
		t.Fatalf("id parse: %v", err)
	}
	if !strings.Contains(parser.stdout.String(), "2026-10-01T12:00:00Z") {
		t.Errorf("id parse output = %q, want the issue time", parser.stdout.String())
	}

	if err := newTestApp(t, "").run(t, "id", "parse", "not-an-id"); err == nil {
		t.Error("id parse of garbage succeeded")
	}
}

func TestIDCohort(t *testing.T) {
	ta := newTestApp(t, "")
	if err := ta.run(t, "id", "cohort", "981224", "17"); err != nil {
		t.Fatalf("id cohort: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(ta.stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), ta.stdout.String())
	}
	want := []string{"981224 " + ids.CohortOf(981_224).String(), "17 " + ids.CohortOf(17).String()}
	for i, line := range lines {
		if got := strings.Join(strings.Fields(line), " "); got != want[i] {
			t.Errorf("line %d = %q, want %q", i, got, want[i])
		}
	}

	for _, bad := range []string{"0", "-3", "visitor"} {
		if err := newTestApp(t, "").run(t, "id", "cohort", bad); err == nil {
			t.Errorf("id cohort %q succeeded", bad)
		}
	}
}

func TestRoute(t *testing.T) {
	ta := newTestApp(t, "")
	if err := ta.run(t, "route", "--from", "Europe", "NorthAmerica", "Asia", "Africa"); err != nil {
		t.Fatalf("route: %v", err)
	}
	want := []string{"NorthAmerica 2", "Asia 2", "Africa 1 closest"}
	lines := strings.Split(strings.TrimSpace(ta.stdout.String()), "\n")
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), ta.stdout.String())
	}
	for i, line := range lines {
		if got := strings.Join(strings.Fields(line), " "); got != want[i] {
			t.Errorf("line %d = %q, want %q", i, got, want[i])
		}
	}

	all := newTestApp(t, "")
	if err := all.run(t, "route", "--from", "Oceania"); err != nil {
		t.Fatalf("route without candidates: %v", err)
	}
	if got := strings.Count(all.stdout.String(), "\n"); got != len(ids.Regions) {
		t.Errorf("ranked %d regions, want %d", got, len(ids.Regions))
	}
	var closest []string
	for _, line := range strings.Split(all.stdout.String(), "\n") {
		if fields := strings.Fields(line); len(fields) == 3 {
			closest = append(closest, strings.Join(fields, " "))
		}
	}
	if len(closest) != 1 || closest[0] != "Oceania 0 closest" {
		t.Errorf("marked %q, want only Oceania 0 closest", closest)
	}

	for _, args := range [][]string{
		{"route", "Europe"},
		{"route", "--from", "Atlantis"},
		{"route", "--from", "Europe", "Atlantis"},
	} {
		if err := newTestApp(t, "").run(t, args...); err == nil {
			t.Errorf("%v succeeded", args)
		}
	}
}

func TestVersion(t *testing.T) {
	printer := newTestApp(t, "")
	if err := printer.run(t, "version"); err != nil {
		t.Fatalf("version: %v", err)
	}
	output := printer.stdout.String()
	if !strings.HasPrefix(output, "plasma-codec ") || !strings.Contains(output, "Protocol: 1") {
		t.Errorf("version output = %q", output)
	}
	if moderationEnabled != strings.Contains(output, "moderation") {
		t.Errorf("version output = %q, moderation compiled in: %v", output, moderationEnabled)
	}
}

func TestExtractConfigFlag(t *testing.T) {
	tests := []struct {
		args     []string
		wantPath string
		wantArgs []string
	}{
		{nil, "", nil},
		{[]string{"decode"}, "", []string{"decode"}},
		{[]string{"--config", "plasma.yaml", "decode"}, "plasma.yaml", []string{"decode"}},
		{[]string{"--config=plasma.yaml", "decode", "-c"}, "plasma.yaml", []string{"decode", "-c"}},
	}
	for _, test := range tests {
		path, args, err := extractConfigFlag(test.args)
		if err != nil {
			t.Fatalf("extractConfigFlag(%v): %v", test.args, err)
		}
		if path != test.wantPath || strings.Join(args, " ") != strings.Join(test.wantArgs, " ") {
			t.Errorf("extractConfigFlag(%v) = %q, %v; want %q, %v", test.args, path, args, test.wantPath, test.wantArgs)
		}
	}
	if _, _, err := extractConfigFlag([]string{"--config"}); err == nil {
		t.Error("extractConfigFlag with no value succeeded")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("PLASMA_CONFIG", "")

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Environment != config.Development {
		t.Errorf("environment = %s, want development", cfg.Environment)
	}

	path := filepath.Join(t.TempDir(), "plasma.yaml")
	if err := os.WriteFile(path, []byte("environment: production\nprotocol:\n  compression: lz4\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err = loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig(%s): %v", path, err)
	}
	if cfg.Protocol.Compression != "lz4" || cfg.Protocol.ClockSkew != "10s" {
		t.Errorf("protocol = %+v, want lz4 with production skew", cfg.Protocol)
	}

	if err := os.WriteFile(path, []byte("protocol:\n  compression: gzip\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("loadConfig accepted an invalid compression")
	}
}
