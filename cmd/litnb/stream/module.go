// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/litnb/cmd/litnb/cli"
	"github.com/bureau-foundation/litnb/lib/chunk"
	"github.com/bureau-foundation/litnb/lib/config"
	"github.com/bureau-foundation/litnb/lib/notebook"
)

type moduleParams struct {
	cli.CommonParams
	Output   string `json:"output"    flag:"output,o"  desc:"write the module to this file (default: beside the notebook, or stdout for stdin)"`
	NoChunks bool   `json:"no_chunks" flag:"no-chunks" desc:"omit the marker line before each code block"`
}

func moduleCommand() *cli.Command {
	var params moduleParams

	return &cli.Command{
		Name:    "module",
		Summary: "Extract the importable module from a notebook",
		Description: `Write the module code of a notebook as a plain source file that other
code can import.

Only code cells of kind module are kept; cells marked "# notebook" or
"# test" are exploration and checks, not library code. A markdown cell
at the very top becomes the module docstring. By default each kept cell
is preceded by its marker line so readers can find the originating cell;
--no-chunks (or module.chunk_markers: false) omits them.

The module name is the notebook's base name, lower-cased, with the
configured extension (module.extension, default .py). Notebook names
containing whitespace or punctuation cannot be module names and are
rejected unless --output is given.

The output is one-way: it carries no metadata and is not meant to be
decoded.`,
		Usage: "litnb module [flags] [notebook.ipynb]",
		Examples: []cli.Example{
			{
				Description: "Write parser.py beside Parser.ipynb",
				Command:     "litnb module Parser.ipynb",
			},
			{
				Description: "Print bare module code",
				Command:     "litnb module --no-chunks -o - Parser.ipynb",
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
			if err := cli.NoExtraArgs("module", remaining); err != nil {
				return err
			}

			outputPath, err := modulePath(params.Output, input, cfg)
			if err != nil {
				return err
			}
			logger = logger.With("input", input.Name())

			options := chunk.ModuleOptions{
				ChunkMarkers: cfg.Module.ChunkMarkers && !params.NoChunks,
				MarkerWidth:  cfg.Marker.Width,
			}
			module, err := projectModule(input, options)
			if err != nil {
				return err
			}
			if err := cli.WriteOutput(outputPath, os.Stdout, module); err != nil {
				return err
			}
			if outputPath != "" && outputPath != "-" {
				logger.Info("wrote module", "path", outputPath)
			}
			return nil
		},
	}
}

// modulePath resolves where the module goes: the explicit output, else
// the derived module file beside a notebook file, else stdout ("").
func modulePath(output string, input *cli.Input, cfg *config.Config) (string, error) {
	if output != "" || input.Path == "" {
		return output, nil
	}
	name, err := notebook.ModuleFilename(input.Path, cfg.Module.Extension)
	if err != nil {
		return "", cli.Validation("%w; use --output to name the module", err)
	}
	return filepath.Join(filepath.Dir(input.Path), name), nil
}

// projectModule parses the notebook in input and returns its module text.
func projectModule(input *cli.Input, options chunk.ModuleOptions) ([]byte, error) {
	document, err := readNotebook(input)
	if err != nil {
		return nil, err
	}
	return []byte(strings.Join(chunk.ProjectModule(document, options), "")), nil
}
