// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pack

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/litnb/cmd/litnb/cli"
	"github.com/bureau-foundation/litnb/lib/snapshot"
)

type unpackParams struct {
	cli.CommonParams
	Output   string `json:"output"   flag:"output,o" desc:"write the stream to this file instead of stdout"`
	Diagnose bool   `json:"diagnose" flag:"diagnose" desc:"print the envelope in CBOR diagnostic notation instead of unpacking"`
}

func unpackCommand() *cli.Command {
	var params unpackParams

	return &cli.Command{
		Name:    "unpack",
		Summary: "Restore the round-trip stream from a snapshot",
		Description: `Read a snapshot written by "litnb pack", decompress it, check the
digest, and write the stream.

A snapshot whose digest does not match, that was written by a newer
format version, or that is not a snapshot at all is rejected and
nothing is written.

--diagnose prints the envelope fields (version, compression, size, and
digest) in CBOR diagnostic notation without decompressing the payload.`,
		Usage: "litnb unpack [flags] [snapshot.litz]",
		Examples: []cli.Example{
			{
				Description: "Restore and decode a snapshot",
				Command:     "litnb unpack analysis.litz | litnb decode -o analysis.ipynb",
			},
			{
				Description: "Show what a snapshot holds",
				Command:     "litnb unpack --diagnose analysis.litz",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			input, remaining, err := cli.ReadInput(args, os.Stdin)
			if err != nil {
				return err
			}
			if err := cli.NoExtraArgs("unpack", remaining); err != nil {
				return err
			}

			if params.Diagnose {
				return diagnoseSnapshot(input, os.Stdout)
			}

			stream, envelope, err := unpackSnapshot(input)
			if err != nil {
				return err
			}
			if err := cli.WriteOutput(params.Output, os.Stdout, stream); err != nil {
				return err
			}
			logger.Debug("unpacked snapshot",
				"input", input.Name(),
				"compression", envelope.Compression.String(),
				"size", envelope.Size,
			)
			return nil
		},
	}
}

func unpackSnapshot(input *cli.Input) ([]byte, *snapshot.Envelope, error) {
	stream, envelope, err := snapshot.Unpack(bytes.NewReader(input.Data))
	if err != nil {
		return nil, nil, snapshotError(input.Name(), err)
	}
	return stream, envelope, nil
}

func diagnoseSnapshot(input *cli.Input, w io.Writer) error {
	notation, err := snapshot.Describe(input.Data)
	if err != nil {
		return snapshotError(input.Name(), err)
	}
	if _, err := fmt.Fprintln(w, notation); err != nil {
		return cli.Internal("writing output: %w", err)
	}
	return nil
}
