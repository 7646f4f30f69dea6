// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/bureau-foundation/litnb/cmd/litnb/cli"
	"github.com/bureau-foundation/litnb/lib/version"
)

// TestCommandTreeHelp walks the command tree and checks that every
// runnable command can be listed and explained by --help.
func TestCommandTreeHelp(t *testing.T) {
	root := Root()
	seen := make(map[string]bool)
	for _, command := range root.Subcommands {
		if seen[command.Name] {
			t.Errorf("duplicate command %q", command.Name)
		}
		seen[command.Name] = true

		if command.Run == nil {
			t.Errorf("%s: no Run function", command.Name)
		}
		if command.Summary == "" {
			t.Errorf("%s: missing Summary", command.Name)
		}
		if command.Usage == "" {
			t.Errorf("%s: missing Usage", command.Name)
		}
		if command.Params != nil {
			// Building the flag set panics on malformed flag tags.
			cli.FlagsFromParams(command.Name, command.Params())
		}
	}
	for _, name := range []string{"encode", "decode", "module", "inspect", "verify", "pack", "unpack", "version"} {
		if !seen[name] {
			t.Errorf("command %q missing from the tree", name)
		}
	}
}

func TestUnknownCommandSuggests(t *testing.T) {
	err := Root().Execute(context.Background(), []string{"encdoe"})
	if cli.CategoryOf(err) != cli.CategoryValidation {
		t.Fatalf("err = %v, want a validation error", err)
	}
	if !strings.Contains(err.Error(), `did you mean "encode"`) {
		t.Errorf("error %q does not suggest encode", err)
	}
}

func TestUnknownFlagIsValidation(t *testing.T) {
	err := Root().Execute(context.Background(), []string{"verify", "--no-such-flag"})
	if cli.CategoryOf(err) != cli.CategoryValidation {
		t.Errorf("err = %v, want a validation error", err)
	}
}

func TestWriteVersion(t *testing.T) {
	var text bytes.Buffer
	if err := writeVersion(&text, &cli.JSONOutput{}); err != nil {
		t.Fatalf("writeVersion: %v", err)
	}
	if !strings.HasPrefix(text.String(), "litnb "+version.Version) {
		t.Errorf("text output = %q", text.String())
	}

	var encoded bytes.Buffer
	if err := writeVersion(&encoded, &cli.JSONOutput{OutputJSON: true}); err != nil {
		t.Fatalf("writeVersion --json: %v", err)
	}
	var build version.Build
	if err := json.Unmarshal(encoded.Bytes(), &build); err != nil {
		t.Fatalf("decoding JSON output: %v", err)
	}
	if build != version.Current() {
		t.Errorf("JSON output = %+v, want %+v", build, version.Current())
	}
}
