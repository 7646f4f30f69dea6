// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/bureau-foundation/litnb/cmd/litnb/cli"
	"github.com/bureau-foundation/litnb/lib/outline"
)

type inspectParams struct {
	cli.CommonParams
	cli.JSONOutput
}

func inspectCommand() *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "List the chunks of a round-trip stream",
		Description: `List every chunk of a round-trip stream: its index, kind, the line its
marker is on, and how many content lines it holds. Markdown chunks also
show a title: their first heading, or the start of their first
paragraph.

inspect checks the same structure decode does (markers, comment
prefixes) but does not parse metadata, so it also works on streams
whose metadata is being hand-edited.`,
		Usage: "litnb inspect [flags] [stream]",
		Examples: []cli.Example{
			{
				Description: "Outline an encoded notebook",
				Command:     "litnb encode analysis.ipynb | litnb inspect",
			},
			{
				Description: "Find the line of chunk 12",
				Command:     "litnb inspect --json analysis.lit.py | jq '.[] | select(.index == 12) | .line'",
			},
		},
		Params: func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			input, remaining, err := cli.ReadInput(args, os.Stdin)
			if err != nil {
				return err
			}
			if err := cli.NoExtraArgs("inspect", remaining); err != nil {
				return err
			}
			entries, err := inspectStream(input, logger.With("input", input.Name()))
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(os.Stdout, entries); done {
				return err
			}
			return writeOutline(os.Stdout, entries)
		},
	}
}

func inspectStream(input *cli.Input, logger *slog.Logger) ([]outline.Entry, error) {
	lines, err := readStreamLines(input)
	if err != nil {
		return nil, err
	}
	entries, err := outline.Build(lines, logger)
	if err != nil {
		return nil, streamError(input, err)
	}
	return entries, nil
}

// writeOutline prints entries as an aligned table. Heading titles are
// indented by level so the document structure shows.
func writeOutline(w io.Writer, entries []outline.Entry) error {
	table := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	fmt.Fprintln(table, "INDEX\tKIND\tLINE\tLINES\tTITLE")
	for _, entry := range entries {
		title := entry.Title
		if entry.Level > 1 {
			title = strings.Repeat("  ", entry.Level-1) + title
		}
		fmt.Fprintf(table, "%d\t%s\t%d\t%d\t%s\n", entry.Index, entry.Kind, entry.Line, entry.Lines, title)
	}
	return table.Flush()
}
