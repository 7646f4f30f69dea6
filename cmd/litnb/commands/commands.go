// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete litnb command tree.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/litnb/cmd/litnb/cli"
	packcmd "github.com/bureau-foundation/litnb/cmd/litnb/pack"
	streamcmd "github.com/bureau-foundation/litnb/cmd/litnb/stream"
	"github.com/bureau-foundation/litnb/lib/version"
)

// Root builds and returns the litnb command tree.
func Root() *cli.Command {
	var subcommands []*cli.Command
	subcommands = append(subcommands, streamcmd.Commands()...)
	subcommands = append(subcommands, packcmd.Commands()...)
	subcommands = append(subcommands, versionCommand())

	return &cli.Command{
		Name: "litnb",
		Description: `litnb: literate notebooks as plain text.

Convert Jupyter notebooks to a round-trip stream that editors, linters,
and diff tools handle as an ordinary source file, and back again without
loss. Extract a notebook's module code as an importable source file.

Configuration is read from the file named by --config or $LITNB_CONFIG.`,
		Subcommands: subcommands,
		Examples: []cli.Example{
			{
				Description: "Edit a notebook as text and convert it back",
				Command:     "litnb encode analysis.ipynb -o analysis.lit.py && $EDITOR analysis.lit.py && litnb decode analysis.lit.py -o analysis.ipynb",
			},
			{
				Description: "Check that a notebook survives the round trip",
				Command:     "litnb verify analysis.ipynb",
			},
			{
				Description: "Write the module for Parser.ipynb to parser.py",
				Command:     "litnb module Parser.ipynb",
			},
			{
				Description: "List the chunks of a stream",
				Command:     "litnb inspect analysis.lit.py",
			},
		},
	}
}

type versionParams struct {
	cli.CommonParams
	cli.JSONOutput
}

func versionCommand() *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Usage:   "litnb version [--json]",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if err := cli.NoExtraArgs("version", args); err != nil {
				return err
			}
			return writeVersion(os.Stdout, &params.JSONOutput)
		},
	}
}

func writeVersion(w io.Writer, output *cli.JSONOutput) error {
	if done, err := output.EmitJSON(w, version.Current()); done {
		return err
	}
	_, err := fmt.Fprintf(w, "litnb %s\n", version.Full())
	return err
}
