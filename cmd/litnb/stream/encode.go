// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/litnb/cmd/litnb/cli"
	"github.com/bureau-foundation/litnb/lib/chunk"
)

type encodeParams struct {
	cli.CommonParams
	Output      string `json:"output"       flag:"output,o"     desc:"write the stream to this file instead of stdout"`
	MarkerWidth int    `json:"marker_width" flag:"marker-width" desc:"marker line width, at least 38 (default: marker.width from config)"`
}

func encodeCommand() *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Encode a notebook as a round-trip stream",
		Description: `Read a Jupyter notebook and write it as a round-trip stream: a plain
text file that any editor or linter can open and that "litnb decode"
turns back into the same notebook.

Each cell becomes a chunk introduced by a marker line naming its index
and kind. Code cells are written verbatim; their kind (module, notebook,
or test) comes from a "# notebook" or "# test" comment on the first
line, defaulting to module. Markdown cells are written with every
non-blank line prefixed by "#: ". The notebook's metadata follows as a
final comment-encoded JSON chunk.

Raw cells and other cell types have no place in the stream and are
skipped with a warning.`,
		Usage: "litnb encode [flags] [notebook.ipynb]",
		Examples: []cli.Example{
			{
				Description: "Encode a notebook to stdout",
				Command:     "litnb encode analysis.ipynb",
			},
			{
				Description: "Encode to a file that tools can lint",
				Command:     "litnb encode analysis.ipynb -o analysis.lit.py",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			input, remaining, err := cli.ReadInput(args, os.Stdin)
			if err != nil {
				return err
			}
			if err := cli.NoExtraArgs("encode", remaining); err != nil {
				return err
			}
			logger = logger.With("input", input.Name())

			var output bytes.Buffer
			width := markerWidth(params.MarkerWidth, cfg.Marker.Width)
			if err := encodeNotebook(input, &output, width, logger); err != nil {
				return err
			}
			return cli.WriteOutput(params.Output, os.Stdout, output.Bytes())
		},
	}
}

// encodeNotebook parses the notebook in input and writes its stream to w.
func encodeNotebook(input *cli.Input, w io.Writer, width int, logger *slog.Logger) error {
	document, err := readNotebook(input)
	if err != nil {
		return err
	}
	options := chunk.Options{MarkerWidth: width, Logger: logger}
	if err := chunk.Write(w, document, options); err != nil {
		if errors.Is(err, chunk.ErrMarkerWidth) {
			return cli.Validation("--marker-width: %w", err)
		}
		return cli.Internal("encoding %s: %w", input.Name(), err)
	}
	logger.Debug("encoded notebook", "blocks", len(document.Blocks))
	return nil
}
