// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package stream implements the litnb commands that convert between
// notebooks and round-trip streams: encode, decode, module, inspect,
// and verify.
//
// Each command reads a trailing file argument or stdin and writes to
// --output or stdout, so commands compose in pipelines:
//
//	litnb encode analysis.ipynb | litnb decode -o copy.ipynb
//
// The conversion logic lives in plain functions over readers and
// writers; the Run closures only resolve config, input, and output.
package stream

import (
	"bytes"
	"errors"

	"github.com/bureau-foundation/litnb/cmd/litnb/cli"
	"github.com/bureau-foundation/litnb/lib/chunk"
	"github.com/bureau-foundation/litnb/lib/notebook"
)

// readNotebook parses a notebook, reporting malformed JSON as a
// validation error.
func readNotebook(input *cli.Input) (*notebook.Document, error) {
	document, err := notebook.Read(bytes.NewReader(input.Data))
	if err != nil {
		return nil, cli.Validation("%s: %w", input.Name(), err)
	}
	return document, nil
}

// readStreamLines splits a stream into lines, keeping terminators.
func readStreamLines(input *cli.Input) ([]string, error) {
	lines, err := chunk.ReadLines(bytes.NewReader(input.Data))
	if err != nil {
		return nil, cli.Internal("reading %s: %w", input.Name(), err)
	}
	return lines, nil
}

// streamError categorizes a codec error: malformed streams are the
// caller's input problem, anything else is internal.
func streamError(input *cli.Input, err error) error {
	var decodeError *chunk.DecodeError
	if errors.As(err, &decodeError) {
		return cli.Validation("%s: %w", input.Name(), err)
	}
	return cli.Internal("%s: %w", input.Name(), err)
}

// markerWidth picks the flag value when set, else the configured width.
func markerWidth(flagValue, configured int) int {
	if flagValue > 0 {
		return flagValue
	}
	return configured
}
