// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the configuration shared by Plasma tools.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Protocol configures message validation and framing.
	Protocol ProtocolConfig `yaml:"protocol"`

	// Moderation configures text classification.
	Moderation ModerationConfig `yaml:"moderation"`

	// Per-environment overrides, applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`

	// dir is the directory of the loaded file, empty for Default.
	dir string
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Protocol   *ProtocolConfig   `yaml:"protocol,omitempty"`
	Moderation *ModerationConfig `yaml:"moderation,omitempty"`
}

// ProtocolConfig configures message validation and framing.
type ProtocolConfig struct {
	// ClockSkew is how far past the local clock a message timestamp
	// may lie. A Go duration string.
	// Default: 30s (development, staging), 10s (production)
	ClockSkew string `yaml:"clock_skew"`

	// Compression is the envelope compression: none, lz4, zstd or auto.
	// Default: auto
	Compression string `yaml:"compression"`

	// MaxPayload bounds an uncompressed message payload in bytes.
	// Default: 1048576
	MaxPayload int `yaml:"max_payload"`
}

// ModerationConfig configures text classification.
type ModerationConfig struct {
	// Ruleset is the path to a YAML or JSONC ruleset file. Empty
	// selects the built-in ruleset.
	Ruleset string `yaml:"ruleset"`
}

// Compression names accepted in protocol.compression.
var compressionNames = []string{"none", "lz4", "zstd", "auto"}

// Default returns the configuration used when no file is given, and the
// base that a loaded file is merged into.
func Default() *Config {
	return &Config{
		Environment: Development,
		Protocol: ProtocolConfig{
			ClockSkew:   "30s",
			Compression: "auto",
			MaxPayload:  1 << 20,
		},
	}
}

// Load loads configuration from the PLASMA_CONFIG environment variable.
// It fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv("PLASMA_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("PLASMA_CONFIG environment variable not set; " +
			"set it to the path of your plasma.yaml config file, or use --config flag")
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Unknown keys
// are errors. The result is not validated; call Validate.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	absolute, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	c.dir = filepath.Dir(absolute)
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		if overrides == nil {
			overrides = &ConfigOverrides{
				Protocol: &ProtocolConfig{ClockSkew: "10s"},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Protocol != nil {
		if overrides.Protocol.ClockSkew != "" {
			c.Protocol.ClockSkew = overrides.Protocol.ClockSkew
		}
		if overrides.Protocol.Compression != "" {
			c.Protocol.Compression = overrides.Protocol.Compression
		}
		if overrides.Protocol.MaxPayload != 0 {
			c.Protocol.MaxPayload = overrides.Protocol.MaxPayload
		}
	}

	if overrides.Moderation != nil {
		if overrides.Moderation.Ruleset != "" {
			c.Moderation.Ruleset = overrides.Moderation.Ruleset
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"PLASMA_CONFIG_DIR": c.dir,
		"HOME":              os.Getenv("HOME"),
	}

	c.Moderation.Ruleset = expandVars(c.Moderation.Ruleset, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, preferring
// vars over the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if _, err := c.Protocol.Skew(); err != nil {
		errs = append(errs, err)
	}

	if !slices.Contains(compressionNames, c.Protocol.Compression) {
		errs = append(errs, fmt.Errorf("protocol.compression must be one of: %v", compressionNames))
	}

	if c.Protocol.MaxPayload <= 0 {
		errs = append(errs, fmt.Errorf("protocol.max_payload must be positive, got %d", c.Protocol.MaxPayload))
	}

	if c.Moderation.Ruleset != "" {
		if _, err := os.Stat(c.Moderation.Ruleset); err != nil {
			errs = append(errs, fmt.Errorf("moderation.ruleset: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Skew parses ClockSkew. Negative durations are rejected.
func (p ProtocolConfig) Skew() (time.Duration, error) {
	skew, err := time.ParseDuration(p.ClockSkew)
	if err != nil {
		return 0, fmt.Errorf("protocol.clock_skew: %w", err)
	}
	if skew < 0 {
		return 0, fmt.Errorf("protocol.clock_skew must not be negative, got %s", p.ClockSkew)
	}
	return skew, nil
}
