// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/litnb/lib/chunk"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "LITNB_CONFIG"

// Config is the complete litnb configuration.
type Config struct {
	// Marker configures chunk marker lines.
	Marker MarkerConfig `yaml:"marker"`

	// Module configures the module projection ("litnb module").
	Module ModuleConfig `yaml:"module"`

	// Snapshot configures "litnb pack".
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// MarkerConfig configures chunk marker lines.
type MarkerConfig struct {
	// Width is the total length of a marker line, at least
	// chunk.MinMarkerWidth so every marker keeps its "#" filler.
	// Streams written with any valid width decode identically.
	// Default: 80
	Width int `yaml:"width"`
}

// ModuleConfig configures the module projection.
type ModuleConfig struct {
	// ChunkMarkers precedes each projected code block with a marker
	// naming the cell it came from.
	// Default: true
	ChunkMarkers bool `yaml:"chunk_markers"`

	// Extension is appended to the derived module name.
	// Default: .py
	Extension string `yaml:"extension"`
}

// SnapshotConfig configures snapshot files.
type SnapshotConfig struct {
	// Compression is the payload algorithm: none, lz4, or zstd.
	// Default: zstd
	Compression string `yaml:"compression"`

	// Directory is where "litnb pack" writes snapshots when no
	// output is given. Empty means beside the input file.
	Directory string `yaml:"directory"`
}

// CompressionNames lists the accepted snapshot.compression values.
var CompressionNames = []string{"none", "lz4", "zstd"}

// Default returns the default configuration. A loaded file is merged
// over these values, so fields the file leaves out keep them.
func Default() *Config {
	return &Config{
		Marker: MarkerConfig{
			Width: 80,
		},
		Module: ModuleConfig{
			ChunkMarkers: true,
			Extension:    ".py",
		},
		Snapshot: SnapshotConfig{
			Compression: "zstd",
		},
	}
}

// Load loads configuration from the LITNB_CONFIG environment variable.
// There is no fallback: if the variable is not set, Load fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your litnb.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. Unknown keys
// are rejected so a misspelled option fails loudly instead of being
// ignored.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Snapshot.Directory = expandVars(c.Snapshot.Directory, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, preferring
// vars over the environment.
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

// Validate checks the configuration, reporting every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Marker.Width < chunk.MinMarkerWidth {
		errs = append(errs, fmt.Errorf("marker.width must be at least %d, got %d", chunk.MinMarkerWidth, c.Marker.Width))
	}

	if !strings.HasPrefix(c.Module.Extension, ".") || strings.ContainsAny(c.Module.Extension, "/\\") {
		errs = append(errs, fmt.Errorf("module.extension must start with '.' and contain no path separators, got %q", c.Module.Extension))
	}

	if !slices.Contains(CompressionNames, c.Snapshot.Compression) {
		errs = append(errs, fmt.Errorf("snapshot.compression must be one of: %v", CompressionNames))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
