// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"github.com/bureau-foundation/litnb/lib/config"
)

// CommonParams holds the flags every litnb command accepts. Embed it
// in a command's params struct.
type CommonParams struct {
	ConfigPath string `json:"-" flag:"config" desc:"path to a litnb.yaml config file (default: $LITNB_CONFIG)"`
	Verbose    bool   `json:"-" flag:"verbose,v" desc:"log debug detail to stderr"`
}

// LogLevel implements [Verbosity].
func (p *CommonParams) LogLevel() slog.Level {
	if p.Verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// LoadConfig loads the file named by --config, else the file named by
// LITNB_CONFIG, else returns the defaults.
func (p *CommonParams) LoadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case p.ConfigPath != "":
		cfg, err = config.LoadFile(p.ConfigPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		return config.Default(), nil
	}
	if err != nil {
		return nil, Validation("loading config: %w", err)
	}
	return cfg, nil
}
