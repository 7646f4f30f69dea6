// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunk

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/bureau-foundation/litnb/lib/notebook"
)

// threeBlockStream is the exact encoding of threeBlockDocument.
const threeBlockStream = `
#### Cell #0 Type: markdown ####################################################

#: Title

#### Cell #1 Type: module ######################################################

x = 1

#### Cell #2 Type: test ########################################################

assert x == 1

#### Cell #3 Type: metadata ####################################################

#: {}

#### Cell #4 Type: finish ######################################################

`

func threeBlockDocument() *notebook.Document {
	return &notebook.Document{
		Blocks: []notebook.Block{
			notebook.Prose("Title"),
			notebook.Code(notebook.TagModule, "x = 1"),
			notebook.Code(notebook.TagTest, "assert x == 1"),
		},
	}
}

func TestEncodeThreeBlocks(t *testing.T) {
	lines, err := Encode(threeBlockDocument(), Options{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got := strings.Join(lines, ""); got != threeBlockStream {
		t.Errorf("Encode produced:\n%s\nwant:\n%s", got, threeBlockStream)
	}
	for number, line := range lines {
		if !strings.HasSuffix(line, "\n") || strings.Count(line, "\n") != 1 {
			t.Errorf("line %d = %q, want exactly one terminating newline", number, line)
		}
	}
}

func TestWriteMatchesEncode(t *testing.T) {
	var buffer bytes.Buffer
	if err := Write(&buffer, threeBlockDocument(), Options{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buffer.String() != threeBlockStream {
		t.Errorf("Write produced:\n%s", buffer.String())
	}
}

func TestEncodeIndicesAreContiguous(t *testing.T) {
	document := &notebook.Document{
		Blocks: []notebook.Block{
			notebook.Code(notebook.TagModule, "a"),
			{Type: notebook.CellRaw, Source: []string{"raw text"}},
			notebook.Prose("b"),
			{Type: "heading", Source: []string{"old"}},
			notebook.Code(notebook.TagNotebook),
		},
	}

	lines, err := Encode(document, Options{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var indices []uint32
	var kinds []Kind
	for _, line := range lines {
		if index, kind, ok := ParseMarker(line); ok {
			indices = append(indices, index)
			kinds = append(kinds, kind)
		}
	}

	wantKinds := []Kind{KindModule, KindMarkdown, KindNotebook, KindMetadata, KindFinish}
	if len(kinds) != len(wantKinds) {
		t.Fatalf("kinds = %v, want %v", kinds, wantKinds)
	}
	for position := range wantKinds {
		if indices[position] != uint32(position) {
			t.Errorf("marker %d has index %d", position, indices[position])
		}
		if kinds[position] != wantKinds[position] {
			t.Errorf("marker %d has kind %q, want %q", position, kinds[position], wantKinds[position])
		}
	}
}

func TestEncodeLogsSkippedBlocks(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	document := &notebook.Document{
		Blocks: []notebook.Block{
			notebook.Prose("intro"),
			{Type: notebook.CellRaw, Source: []string{"raw"}},
		},
	}
	lines, err := Encode(document, Options{Logger: logger})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if strings.Contains(strings.Join(lines, ""), "raw") {
		t.Error("skipped raw block content appears in the stream")
	}

	var record map[string]any
	if err := json.Unmarshal(logs.Bytes(), &record); err != nil {
		t.Fatalf("expected one JSON log record, got %q: %v", logs.String(), err)
	}
	if record["level"] != "WARN" || record["cell_type"] != "raw" || record["block"] != float64(1) {
		t.Errorf("log record = %v, want WARN with cell_type=raw block=1", record)
	}
}

func TestEncodeWarnsOnMarkerLikeCode(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	document := &notebook.Document{
		Blocks: []notebook.Block{
			notebook.Code(notebook.TagModule, FormatMarker(9, KindModule, 0)+"\n", "x = 1"),
		},
	}
	if _, err := Encode(document, Options{Logger: logger}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(logs.String(), "looks like a chunk marker") {
		t.Errorf("no marker warning logged: %q", logs.String())
	}
}

func TestEncodeMetadata(t *testing.T) {
	document := &notebook.Document{
		Blocks: []notebook.Block{notebook.Code(notebook.TagModule, "pass")},
		Metadata: map[string]any{
			"nbformat":        json.Number("4"),
			"kernelspec":      map[string]any{"name": "python3", "display_name": "Python <3>"},
			notebook.CellsKey: []any{"must not be written"},
		},
	}

	lines, err := Encode(document, Options{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	stream := strings.Join(lines, "")

	want := `#: {
#:   "kernelspec": {
#:     "display_name": "Python <3>",
#:     "name": "python3"
#:   },
#:   "nbformat": 4
#: }
`
	if !strings.Contains(stream, want) {
		t.Errorf("metadata chunk not found in stream:\n%s\nwant fragment:\n%s", stream, want)
	}
	if strings.Contains(stream, "must not be written") {
		t.Error("cell list leaked into the metadata chunk")
	}
}

func TestEncodeMarkerWidth(t *testing.T) {
	lines, err := Encode(&notebook.Document{}, Options{MarkerWidth: 50})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	markers := 0
	for _, line := range lines {
		if _, _, ok := ParseMarker(line); ok {
			markers++
			if width := len(strings.TrimSuffix(line, "\n")); width != 50 {
				t.Errorf("marker %q has width %d, want 50", line, width)
			}
		}
	}
	if markers != 2 {
		t.Errorf("empty document produced %d markers, want metadata and finish", markers)
	}
}

func TestEncodeRejectsNarrowMarkerWidth(t *testing.T) {
	document := &notebook.Document{Blocks: []notebook.Block{notebook.Code(notebook.TagModule, "x = 1")}}

	for _, width := range []int{-1, 1, 10, MinMarkerWidth - 1} {
		if _, err := Encode(document, Options{MarkerWidth: width}); !errors.Is(err, ErrMarkerWidth) {
			t.Errorf("Encode with width %d: err = %v, want ErrMarkerWidth", width, err)
		}
	}

	lines, err := Encode(document, Options{MarkerWidth: MinMarkerWidth})
	if err != nil {
		t.Fatalf("Encode with width %d: %v", MinMarkerWidth, err)
	}
	decoded, err := Decode(lines, Options{})
	if err != nil {
		t.Fatalf("Decode of a width %d stream: %v", MinMarkerWidth, err)
	}
	requireSameBlocks(t, decoded.Blocks, document.Blocks)
}

func TestEncodeEmptyStringSourceLikeNoSource(t *testing.T) {
	withEmptyLines := &notebook.Document{Blocks: []notebook.Block{
		notebook.Code(notebook.TagModule, ""),
		notebook.Prose(""),
		notebook.Code(notebook.TagTest, "", ""),
	}}
	withoutSource := &notebook.Document{Blocks: []notebook.Block{
		notebook.Code(notebook.TagModule),
		notebook.Prose(),
		notebook.Code(notebook.TagTest),
	}}

	got, err := Encode(withEmptyLines, Options{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want, err := Encode(withoutSource, Options{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if strings.Join(got, "") != strings.Join(want, "") {
		t.Errorf("empty-string source encoded as:\n%s\nwant:\n%s", strings.Join(got, ""), strings.Join(want, ""))
	}
}

func TestEncodeProseBlankLinesStayBlank(t *testing.T) {
	document := &notebook.Document{
		Blocks: []notebook.Block{notebook.Prose("# Heading\n", "\n", "Body")},
	}
	lines, err := Encode(document, Options{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "\n#: # Heading\n\n#: Body\n\n"
	if !strings.Contains(strings.Join(lines, ""), want) {
		t.Errorf("prose chunk does not contain %q:\n%s", want, strings.Join(lines, ""))
	}
}
