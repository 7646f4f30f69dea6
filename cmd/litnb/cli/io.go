// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"io"
	"io/fs"
	"os"
)

// Input is the data a command reads.
type Input struct {
	// Path is the file the data came from, or "" for stdin.
	Path string

	Data []byte
}

// Name returns the path, or "<stdin>" for standard input, for logs
// and error messages.
func (input *Input) Name() string {
	if input.Path == "" {
		return "<stdin>"
	}
	return input.Path
}

// ReadInput reads a command's input from the file named by the last
// element of args, or from stdin when args is empty or the last
// element is "-". It returns the args with the consumed path removed;
// commands that take a single input reject anything left over.
func ReadInput(args []string, stdin io.Reader) (*Input, []string, error) {
	if length := len(args); length > 0 && args[length-1] != "-" {
		path := args[length-1]
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, nil, NotFound("input %s does not exist", path)
		case err != nil:
			return nil, nil, Validation("reading %s: %w", path, err)
		}
		return &Input{Path: path, Data: data}, args[:length-1], nil
	}

	remaining := args
	if length := len(args); length > 0 {
		remaining = args[:length-1]
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, nil, Internal("reading stdin: %w", err)
	}
	return &Input{Data: data}, remaining, nil
}

// WriteOutput writes data to the file at path, or to stdout when path
// is empty or "-".
func WriteOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		if _, err := stdout.Write(data); err != nil {
			return Internal("writing output: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Internal("writing %s: %w", path, err)
	}
	return nil
}

// NoExtraArgs returns a validation error when a command received
// positional arguments beyond its input.
func NoExtraArgs(command string, args []string) error {
	if len(args) > 0 {
		return Validation("%s takes at most one input file, got extra argument %q", command, args[0])
	}
	return nil
}
