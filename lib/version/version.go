// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"strings"
)

// These variables are set via -ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/plasma/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// Info returns a formatted version string suitable for --version output.
func Info() string {
	dirty := ""
	if GitDirty == "true" {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, GitCommit, dirty, BuildTime)
}

// Full returns detailed version information: Info, the protocol
// version tag the binary speaks, the capabilities compiled in, the Go
// version and the platform.
func Full(protocol uint16, features ...string) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%s\n  Protocol: %d", Info(), protocol)
	if len(features) > 0 {
		fmt.Fprintf(&builder, "\n  Features: %s", strings.Join(features, ", "))
	}
	fmt.Fprintf(&builder, "\n  Go: %s\n  Platform: %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return builder.String()
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Commit returns the git commit SHA.
func Commit() string {
	return GitCommit
}
