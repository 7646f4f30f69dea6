// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pack

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/litnb/cmd/litnb/cli"
	"github.com/bureau-foundation/litnb/lib/chunk"
	"github.com/bureau-foundation/litnb/lib/config"
	"github.com/bureau-foundation/litnb/lib/snapshot"
)

type packParams struct {
	cli.CommonParams
	Output      string `json:"output"      flag:"output,o"    desc:"write the snapshot to this file (- for stdout)"`
	Compression string `json:"compression" flag:"compression" desc:"payload compression: none, lz4, or zstd (default: snapshot.compression from config)"`
}

func packCommand() *cli.Command {
	var params packParams

	return &cli.Command{
		Name:    "pack",
		Summary: "Store a round-trip stream as a compressed snapshot",
		Description: `Compress a round-trip stream into a snapshot: a small CBOR envelope
recording the compression, the stream size, and the stream's BLAKE3
digest. "litnb unpack" restores the stream byte for byte and refuses a
snapshot whose digest does not match.

The stream must decode; pack refuses to store a stream "litnb decode"
would reject.

Without --output the snapshot is written to snapshot.directory from the
config (when set), otherwise beside the input with the extension
replaced by .litz. Input read from stdin is packed to stdout.

When compression would not shrink the stream it is stored uncompressed
and the envelope says so.`,
		Usage: "litnb pack [flags] [stream]",
		Examples: []cli.Example{
			{
				Description: "Snapshot an encoded notebook beside it",
				Command:     "litnb pack analysis.lit.py",
			},
			{
				Description: "Encode and snapshot in one pipeline",
				Command:     "litnb encode analysis.ipynb | litnb pack --compression lz4 > analysis.litz",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			cfg, err := params.LoadConfig()
			if err != nil {
				return err
			}
			compression, err := resolveCompression(params.Compression, cfg)
			if err != nil {
				return err
			}
			input, remaining, err := cli.ReadInput(args, os.Stdin)
			if err != nil {
				return err
			}
			if err := cli.NoExtraArgs("pack", remaining); err != nil {
				return err
			}

			outputPath, err := snapshotPath(params.Output, input, cfg)
			if err != nil {
				return err
			}
			logger = logger.With("input", input.Name())

			packed, envelope, err := packStream(input, compression, logger)
			if err != nil {
				return err
			}
			if err := cli.WriteOutput(outputPath, os.Stdout, packed); err != nil {
				return err
			}
			logger.Info("packed snapshot",
				"path", outputPath,
				"compression", envelope.Compression.String(),
				"size", envelope.Size,
				"payload_bytes", len(envelope.Payload),
				"digest", envelope.Digest.String(),
			)
			return nil
		},
	}
}

func resolveCompression(flagValue string, cfg *config.Config) (snapshot.Compression, error) {
	name := flagValue
	if name == "" {
		name = cfg.Snapshot.Compression
	}
	compression, err := snapshot.ParseCompression(name)
	if err != nil {
		return 0, cli.Validation("--compression: %w", err)
	}
	return compression, nil
}

// snapshotPath picks where pack writes. An empty result means stdout.
func snapshotPath(output string, input *cli.Input, cfg *config.Config) (string, error) {
	if output != "" || input.Path == "" {
		return output, nil
	}

	base := filepath.Base(input.Path)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + SnapshotExtension
	if cfg.Snapshot.Directory == "" {
		return filepath.Join(filepath.Dir(input.Path), name), nil
	}
	if err := os.MkdirAll(cfg.Snapshot.Directory, 0o755); err != nil {
		return "", cli.Internal("creating snapshot directory: %w", err)
	}
	return filepath.Join(cfg.Snapshot.Directory, name), nil
}

// packStream checks that input decodes as a stream and returns its
// encoded snapshot.
func packStream(input *cli.Input, compression snapshot.Compression, logger *slog.Logger) ([]byte, *snapshot.Envelope, error) {
	lines, err := chunk.ReadLines(bytes.NewReader(input.Data))
	if err != nil {
		return nil, nil, cli.Internal("reading %s: %w", input.Name(), err)
	}
	if _, err := chunk.Decode(lines, chunk.Options{Logger: logger}); err != nil {
		return nil, nil, snapshotError(input.Name(), err)
	}

	var buffer bytes.Buffer
	envelope, err := snapshot.Pack(&buffer, input.Data, compression)
	if err != nil {
		return nil, nil, cli.Internal("packing %s: %w", input.Name(), err)
	}
	if envelope.Compression != compression {
		logger.Debug("compression did not shrink the stream, stored uncompressed", "requested", compression.String())
	}
	return buffer.Bytes(), envelope, nil
}
