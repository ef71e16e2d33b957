// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"errors"
	"fmt"
)

// RequireNoError fails the test if err is not nil.
//
//	testutil.RequireNoError(t, err, "encoding %s", kind)
func RequireNoError(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, err error, msgAndArgs ...any) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", formatMessage(msgAndArgs), err)
	}
}

// RequireErrorIs fails the test unless errors.Is(err, target).
func RequireErrorIs(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, err, target error, msgAndArgs ...any) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("%s: error = %v, want %v", formatMessage(msgAndArgs), err, target)
	}
}

// formatMessage formats optional message arguments into a string.
// Accepts either a single string or a format string followed by args.
func formatMessage(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return "(no message)"
	}
	if len(msgAndArgs) == 1 {
		if s, ok := msgAndArgs[0].(string); ok {
			return s
		}
		return fmt.Sprintf("%v", msgAndArgs[0])
	}
	if format, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs)
}
