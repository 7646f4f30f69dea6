// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for litnb.
//
// Configuration is loaded from a single file specified by either the
// LITNB_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search: a command given neither uses
// [Default] unchanged.
//
// Variable expansion is performed on snapshot.directory after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// This package depends on no other litnb packages.
package config
