// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/litnb/cmd/litnb/cli"
	"github.com/bureau-foundation/litnb/lib/chunk"
	"github.com/bureau-foundation/litnb/lib/notebook"
)

type decodeParams struct {
	cli.CommonParams
	Output string `json:"output" flag:"output,o" desc:"write the notebook to this file instead of stdout"`
}

func decodeCommand() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Decode a round-trip stream into a notebook",
		Description: `Read a round-trip stream written by "litnb encode" (and possibly edited
since) and write the equivalent Jupyter notebook JSON.

Lines before the first marker are ignored. Chunk indices are not
required to be contiguous; a gap is logged as a warning. A stream that
ends without a finish marker is accepted. Decoding fails on a prose or
metadata line that lacks the "#: " prefix, on a marker naming an unknown
kind, and on metadata that is not a JSON object; the error names the
offending line.

Decoded code cells have no outputs or execution counts.`,
		Usage: "litnb decode [flags] [stream]",
		Examples: []cli.Example{
			{
				Description: "Rebuild a notebook from an edited stream",
				Command:     "litnb decode analysis.lit.py -o analysis.ipynb",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			input, remaining, err := cli.ReadInput(args, os.Stdin)
			if err != nil {
				return err
			}
			if err := cli.NoExtraArgs("decode", remaining); err != nil {
				return err
			}
			logger = logger.With("input", input.Name())

			var output bytes.Buffer
			if err := decodeStream(input, &output, logger); err != nil {
				return err
			}
			return cli.WriteOutput(params.Output, os.Stdout, output.Bytes())
		},
	}
}

// decodeStream decodes the stream in input and writes notebook JSON to w.
func decodeStream(input *cli.Input, w io.Writer, logger *slog.Logger) error {
	lines, err := readStreamLines(input)
	if err != nil {
		return err
	}
	document, err := chunk.Decode(lines, chunk.Options{Logger: logger})
	if err != nil {
		return streamError(input, err)
	}
	if err := notebook.Write(w, document); err != nil {
		return cli.Internal("writing notebook: %w", err)
	}
	logger.Debug("decoded stream", "blocks", len(document.Blocks))
	return nil
}
