// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the YAML configuration for Plasma tools.
//
// Configuration is loaded from a single file specified by either the
// PLASMA_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no discovery and no automatic file
// search. Without a file, tools run on [Default].
//
// The file may contain environment-specific sections (development,
// staging, production) that override base values when
// [Config].Environment matches. Production without a section of its
// own gets a tighter clock skew allowance.
//
// ${HOME}, ${PLASMA_CONFIG_DIR} and ${VAR:-default} patterns are
// expanded in the ruleset path after loading. No environment variable
// overrides a config value directly.
//
// This package depends on no other Plasma packages.
package config
