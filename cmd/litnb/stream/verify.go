// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/bureau-foundation/litnb/cmd/litnb/cli"
	"github.com/bureau-foundation/litnb/lib/chunk"
	"github.com/bureau-foundation/litnb/lib/notebook"
	"github.com/bureau-foundation/litnb/lib/snapshot"
)

type verifyParams struct {
	cli.CommonParams
	cli.JSONOutput
}

// verifyReport is the result of checking one notebook.
type verifyReport struct {
	Input string `json:"input"`

	// Blocks is the number of blocks the stream carries; Skipped
	// counts blocks of cell types the stream cannot represent.
	Blocks  int `json:"blocks"`
	Skipped int `json:"skipped"`

	// RoundTrip is true when decoding the stream reproduces every
	// carried block and the notebook metadata.
	RoundTrip bool `json:"round_trip"`

	// Idempotent is true when encoding the decoded notebook
	// reproduces the stream byte for byte.
	Idempotent bool `json:"idempotent"`

	// Digest fingerprints the stream, as recorded by "litnb pack".
	Digest snapshot.Digest `json:"digest"`

	Mismatches []string `json:"mismatches,omitempty"`
}

func (report *verifyReport) ok() bool {
	return report.RoundTrip && report.Idempotent
}

func verifyCommand() *cli.Command {
	var params verifyParams

	return &cli.Command{
		Name:    "verify",
		Summary: "Check that a notebook survives the round trip",
		Description: `Encode a notebook, decode the stream, and compare: every code and
markdown cell must come back with the same kind and source, and the
notebook metadata must come back unchanged. Then encode the decoded
notebook again and check that the stream is identical.

Prints the stream's BLAKE3 digest, the same value "litnb pack" records,
so two notebooks can be compared by what the stream carries.

Exits 1 when a check fails.`,
		Usage: "litnb verify [flags] [notebook.ipynb]",
		Examples: []cli.Example{
			{
				Description: "Verify every notebook in a directory",
				Command:     "for nb in *.ipynb; do litnb verify \"$nb\" || echo \"$nb\"; done",
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
			if err := cli.NoExtraArgs("verify", remaining); err != nil {
				return err
			}

			options := chunk.Options{MarkerWidth: cfg.Marker.Width, Logger: logger.With("input", input.Name())}
			report, err := verifyNotebook(input, options)
			if err != nil {
				return err
			}

			done, err := params.EmitJSON(os.Stdout, report)
			if err != nil {
				return err
			}
			if !done {
				writeReport(os.Stdout, report)
			}
			if !report.ok() {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

// verifyNotebook runs the round-trip checks on the notebook in input.
// A failed check is reported in the result, not as an error.
func verifyNotebook(input *cli.Input, options chunk.Options) (*verifyReport, error) {
	original, err := readNotebook(input)
	if err != nil {
		return nil, err
	}

	lines, err := chunk.Encode(original, options)
	if err != nil {
		return nil, cli.Internal("encoding %s: %w", input.Name(), err)
	}
	stream := strings.Join(lines, "")

	report := &verifyReport{
		Input:  input.Name(),
		Digest: snapshot.Sum([]byte(stream)),
	}

	var carried []notebook.Block
	for _, block := range original.Blocks {
		if block.IsCode() || block.IsProse() {
			carried = append(carried, block)
		} else {
			report.Skipped++
		}
	}
	report.Blocks = len(carried)

	// Decode errors on a stream we just wrote are codec bugs, reported
	// as a failed round trip rather than a usage error.
	decoded, err := chunk.Decode(lines, chunk.Options{Logger: options.Logger})
	if err != nil {
		report.Mismatches = append(report.Mismatches, fmt.Sprintf("decoding the encoded stream failed: %v", err))
		return report, nil
	}

	report.Mismatches = append(report.Mismatches, compareBlocks(carried, decoded.Blocks)...)
	if !sameMetadata(original.Metadata, decoded.Metadata) {
		report.Mismatches = append(report.Mismatches, "notebook metadata changed")
	}
	report.RoundTrip = len(report.Mismatches) == 0

	reencoded, err := chunk.Encode(decoded, options)
	if err != nil {
		return nil, cli.Internal("re-encoding %s: %w", input.Name(), err)
	}
	report.Idempotent = slices.Equal(lines, reencoded)
	if !report.Idempotent {
		report.Mismatches = append(report.Mismatches, "re-encoding the decoded notebook produced a different stream")
	}
	return report, nil
}

// compareBlocks describes every difference between the blocks a stream
// should carry and the blocks decoded from it.
func compareBlocks(want, got []notebook.Block) []string {
	var mismatches []string
	if len(got) != len(want) {
		mismatches = append(mismatches, fmt.Sprintf("decoded %d blocks, want %d", len(got), len(want)))
	}
	for position := range min(len(got), len(want)) {
		wanted, decoded := want[position], got[position]
		switch {
		case decoded.Type != wanted.Type:
			mismatches = append(mismatches, fmt.Sprintf("block %d: cell type %s, want %s", position, decoded.Type, wanted.Type))
		case wanted.IsCode() && decoded.ResolvedTag() != wanted.ResolvedTag():
			mismatches = append(mismatches, fmt.Sprintf("block %d: kind %s, want %s", position, decoded.ResolvedTag(), wanted.ResolvedTag()))
		case notebook.JoinSource(decoded.Source) != notebook.JoinSource(wanted.Source):
			mismatches = append(mismatches, fmt.Sprintf("block %d: source changed", position))
		}
	}
	return mismatches
}

// sameMetadata compares metadata by canonical JSON, which sorts keys
// and renders json.Number and float64 values alike.
func sameMetadata(a, b map[string]any) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	encodedA, errA := json.Marshal(a)
	encodedB, errB := json.Marshal(b)
	return errA == nil && errB == nil && string(encodedA) == string(encodedB)
}

func writeReport(w io.Writer, report *verifyReport) {
	status := func(ok bool) string {
		if ok {
			return "ok"
		}
		return "FAILED"
	}
	fmt.Fprintf(w, "%s\n", report.Input)
	fmt.Fprintf(w, "  blocks:     %d (%d skipped)\n", report.Blocks, report.Skipped)
	fmt.Fprintf(w, "  round trip: %s\n", status(report.RoundTrip))
	fmt.Fprintf(w, "  idempotent: %s\n", status(report.Idempotent))
	fmt.Fprintf(w, "  digest:     %s\n", report.Digest)
	for _, mismatch := range report.Mismatches {
		fmt.Fprintf(w, "  - %s\n", mismatch)
	}
}
