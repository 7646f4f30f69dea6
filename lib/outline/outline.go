// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package outline summarizes round-trip streams for inspection: one
// entry per chunk, with a short title for each prose chunk taken from
// its markdown.
package outline

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/bureau-foundation/litnb/lib/chunk"
)

// MaxTitleLength bounds a title, in runes, before an ellipsis is added.
const MaxTitleLength = 72

// The parser configuration never changes and goldmark parsers are safe
// to share; each Parse call creates its own state.
var (
	markdownParserInstance goldmark.Markdown
	markdownParserOnce     sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownParserInstance
}

// Title returns a one-line title for a markdown block: the text of its
// first heading, or failing that the text of its first paragraph.
// Inline markup is dropped and soft line breaks become spaces. Level is
// the heading level, or 0 when the title came from a paragraph or the
// block has no text.
func Title(markdown string) (title string, level int) {
	if strings.TrimSpace(markdown) == "" {
		return "", 0
	}
	source := []byte(markdown)
	document := getMarkdownParser().Parser().Parse(text.NewReader(source))

	var heading, paragraph ast.Node
	ast.Walk(document, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node.Kind() {
		case ast.KindHeading:
			heading = node
			return ast.WalkStop, nil
		case ast.KindParagraph:
			if paragraph == nil {
				paragraph = node
			}
			return ast.WalkSkipChildren, nil
		case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	switch {
	case heading != nil:
		return truncate(inlineText(heading, source)), heading.(*ast.Heading).Level
	case paragraph != nil:
		return truncate(inlineText(paragraph, source)), 0
	default:
		return "", 0
	}
}

// inlineText concatenates the text segments under node.
func inlineText(node ast.Node, source []byte) string {
	var builder strings.Builder
	ast.Walk(node, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch child := child.(type) {
		case *ast.Text:
			builder.Write(child.Segment.Value(source))
			if child.SoftLineBreak() || child.HardLineBreak() {
				builder.WriteByte(' ')
			}
		case *ast.String:
			builder.Write(child.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(builder.String()), " ")
}

func truncate(title string) string {
	runes := []rune(title)
	if len(runes) <= MaxTitleLength {
		return title
	}
	return strings.TrimRight(string(runes[:MaxTitleLength-1]), " ") + "…"
}

// Entry summarizes one chunk of a stream.
type Entry struct {
	Index uint32     `json:"index"`
	Kind  chunk.Kind `json:"kind"`

	// Line is the 1-based line of the chunk's marker.
	Line int `json:"line"`

	// Lines is the number of content lines: block source lines for
	// code and prose, payload lines for metadata, 0 for finish.
	Lines int `json:"lines"`

	// Title is set for markdown chunks with any text.
	Title string `json:"title,omitempty"`
	Level int    `json:"level,omitempty"`
}

// Build scans a stream and returns one entry per chunk. It fails on the
// same malformed input that decoding fails on, except that metadata is
// not parsed.
func Build(lines []string, logger *slog.Logger) ([]Entry, error) {
	chunks, err := chunk.Chunks(lines, logger)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(chunks))
	for _, c := range chunks {
		content, err := c.Content()
		if err != nil {
			return nil, err
		}
		entry := Entry{Index: c.Index, Kind: c.Kind, Line: c.Line, Lines: len(content)}
		if c.Kind == chunk.KindMarkdown {
			entry.Title, entry.Level = Title(strings.Join(content, ""))
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
