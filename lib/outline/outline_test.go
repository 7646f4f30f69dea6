// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package outline

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/bureau-foundation/litnb/lib/chunk"
	"github.com/bureau-foundation/litnb/lib/notebook"
	"github.com/bureau-foundation/litnb/lib/testutil"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name      string
		markdown  string
		wantTitle string
		wantLevel int
	}{
		{"atx heading", "# Literate Notebook\n\nBody text.", "Literate Notebook", 1},
		{"heading after paragraph", "Intro paragraph.\n\n## Setup", "Setup", 2},
		{"setext heading", "Overview\n========\n", "Overview", 1},
		{"inline markup", "### The `chunk` **codec**", "The chunk codec", 3},
		{"link text", "See [the docs](https://example.com) first.", "See the docs first.", 0},
		{"soft line breaks", "First line\nsecond line\nthird.", "First line second line third.", 0},
		{"code block only", "```python\nx = 1\n```", "", 0},
		{"empty", "", "", 0},
		{"whitespace", " \n\t\n", "", 0},
		{"heading in list", "- # Item heading", "Item heading", 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			title, level := Title(test.markdown)
			if title != test.wantTitle || level != test.wantLevel {
				t.Errorf("Title(%q) = (%q, %d), want (%q, %d)",
					test.markdown, title, level, test.wantTitle, test.wantLevel)
			}
		})
	}
}

func TestTitleTruncates(t *testing.T) {
	title, _ := Title("# " + strings.Repeat("word ", 40))
	runes := []rune(title)
	if len(runes) > MaxTitleLength {
		t.Errorf("title has %d runes, want at most %d", len(runes), MaxTitleLength)
	}
	if !strings.HasSuffix(title, "…") {
		t.Errorf("truncated title %q does not end with an ellipsis", title)
	}
}

func TestBuild(t *testing.T) {
	document := &notebook.Document{
		Blocks: []notebook.Block{
			notebook.Prose("# Parser\n", "\n", "Reads things."),
			notebook.Code(notebook.TagModule, "def parse():\n", "    pass"),
			notebook.Prose("Plain words."),
			notebook.Code(notebook.TagTest, "assert parse() is None"),
		},
		Metadata: map[string]any{"nbformat": 4},
	}
	lines, err := chunk.Encode(document, chunk.Options{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	entries, err := Build(lines, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	type summary struct {
		index uint32
		kind  chunk.Kind
		lines int
		title string
		level int
	}
	var got []summary
	for _, entry := range entries {
		got = append(got, summary{entry.Index, entry.Kind, entry.Lines, entry.Title, entry.Level})
	}
	want := []summary{
		{0, chunk.KindMarkdown, 3, "Parser", 1},
		{1, chunk.KindModule, 2, "", 0},
		{2, chunk.KindMarkdown, 1, "Plain words.", 0},
		{3, chunk.KindTest, 1, "", 0},
		{4, chunk.KindMetadata, 5, "", 0},
		{5, chunk.KindFinish, 0, "", 0},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Build summaries:\n got %+v\nwant %+v", got, want)
	}
	if entries[0].Line != 2 {
		t.Errorf("first entry line = %d, want 2", entries[0].Line)
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(testutil.SplitLines("no markers\n"), nil); !errors.Is(err, chunk.ErrNoChunkMarker) {
		t.Errorf("Build without markers: err = %v, want ErrNoChunkMarker", err)
	}

	stream := "\n" + chunk.FormatMarker(0, chunk.KindMarkdown, 0) + "\n\nnot a comment\n\n"
	if _, err := Build(testutil.SplitLines(stream), nil); !errors.Is(err, chunk.ErrMalformedComment) {
		t.Errorf("Build with bad prose: err = %v, want ErrMalformedComment", err)
	}
}
