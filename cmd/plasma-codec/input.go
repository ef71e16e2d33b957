// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"unicode"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/plasma/lib/plasma"
)

// readInput reads the file named by the last argument when it is a
// regular file on disk, or stdin otherwise. It returns the bytes and
// the arguments left over. With hexMode, whitespace is dropped and the
// rest is decoded as hex.
func (a *app) readInput(args []string, hexMode bool) ([]byte, []string, error) {
	var data []byte
	remainingArgs := args

	if length := len(args); length > 0 {
		candidate := args[length-1]
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			data, err = os.ReadFile(candidate)
			if err != nil {
				return nil, nil, fmt.Errorf("read %s: %w", candidate, err)
			}
			remainingArgs = args[:length-1]
		}
	}

	if data == nil {
		var err error
		data, err = io.ReadAll(a.stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("read stdin: %w", err)
		}
	}

	if hexMode {
		decoded, err := decodeHexInput(data)
		if err != nil {
			return nil, nil, err
		}
		data = decoded
	}

	return data, remainingArgs, nil
}

// decodeHexInput strips whitespace and decodes the rest as hex.
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded[:count], nil
}

// parseDocument reads a JSON or JSONC message document. Comments and
// trailing commas are allowed.
func parseDocument(data []byte) (plasma.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return plasma.Document{}, fmt.Errorf("empty input: expected a JSON message document")
	}
	var document plasma.Document
	if err := json.Unmarshal(jsonc.ToJSON(data), &document); err != nil {
		return plasma.Document{}, err
	}
	return document, nil
}

// writeBinary writes data raw, or as a hex line when stdout is a
// terminal or forceHex is set.
func (a *app) writeBinary(data []byte, forceHex bool) error {
	if a.terminal || forceHex {
		_, err := fmt.Fprintln(a.stdout, hex.EncodeToString(data))
		return err
	}
	_, err := a.stdout.Write(data)
	return err
}

// writeJSON writes value as JSON with a trailing newline.
func (a *app) writeJSON(value any, compact bool) error {
	var (
		output []byte
		err    error
	)
	if compact {
		output, err = json.Marshal(value)
	} else {
		output, err = json.MarshalIndent(value, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(a.stdout, string(output))
	return err
}
