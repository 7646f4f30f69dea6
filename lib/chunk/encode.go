// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/bureau-foundation/litnb/lib/notebook"
)

// Encode renders doc as a round-trip stream and returns its lines,
// each terminated by "\n".
//
// Markdown blocks become comment-encoded markdown chunks and code
// blocks become verbatim chunks of their tag's kind. Blocks of any
// other cell type are logged at Warn and skipped; they do not consume a
// chunk index, so indices run 0..N+1 without gaps where N is the number
// of chunks written for blocks. The metadata chunk (index N) and the
// empty finish chunk (index N+1) always follow.
//
// Encode fails with [ErrMarkerWidth] when options.MarkerWidth is set
// below [MinMarkerWidth], and when the metadata map cannot be marshaled
// to JSON.
func Encode(doc *notebook.Document, options Options) ([]string, error) {
	text, err := encodeText(doc, options)
	if err != nil {
		return nil, err
	}
	return notebook.SplitSource(text), nil
}

// Write encodes doc like [Encode] and writes the stream to w.
func Write(w io.Writer, doc *notebook.Document, options Options) error {
	text, err := encodeText(doc, options)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

func encodeText(doc *notebook.Document, options Options) (string, error) {
	if err := options.validate(); err != nil {
		return "", err
	}
	logger := options.logger()
	stream := streamBuilder{markerWidth: options.MarkerWidth}

	var index uint32
	for position, block := range doc.Blocks {
		switch block.Type {
		case notebook.CellMarkdown:
			stream.separator(index, KindMarkdown)
			stream.source(commentLines(block.Source))
		case notebook.CellCode:
			kind := KindForTag(block.ResolvedTag())
			for offset, line := range block.Source {
				if _, _, isMarker := ParseMarker(line); isMarker {
					logger.Warn("code line looks like a chunk marker; the stream will not decode to the same blocks",
						"block", position, "line", offset)
				}
			}
			stream.separator(index, kind)
			stream.source(block.Source)
		default:
			logger.Warn("skipping block with unsupported cell type",
				"block", position, "cell_type", string(block.Type))
			continue
		}
		index++
	}

	metadata, err := metadataLines(doc.Metadata)
	if err != nil {
		return "", err
	}
	stream.separator(index, KindMetadata)
	stream.source(commentLines(metadata))

	stream.separator(index+1, KindFinish)

	return stream.text.String(), nil
}

// streamBuilder accumulates stream text. Pieces follow the notebook
// source convention: a single line is written without its terminator
// and gets one appended; a source slice has terminators on every line
// but the last.
type streamBuilder struct {
	text        strings.Builder
	markerWidth int
}

func (b *streamBuilder) line(line string) {
	b.text.WriteString(line)
	b.text.WriteByte('\n')
}

func (b *streamBuilder) source(lines []string) {
	// Empty-string lines decode to a nil source; write them as nil so
	// re-encoding is stable.
	if notebook.JoinSource(lines) == "" {
		return
	}
	for _, line := range lines {
		b.text.WriteString(line)
	}
	b.text.WriteByte('\n')
}

// separator writes a marker surrounded by blank lines. The blank line
// before the marker doubles as the trailing blank line of the previous
// chunk's payload.
func (b *streamBuilder) separator(index uint32, kind Kind) {
	b.line("")
	b.line(FormatMarker(index, kind, b.markerWidth))
	b.line("")
}

func commentLines(lines []string) []string {
	encoded := make([]string, len(lines))
	for index, line := range lines {
		encoded[index] = EncodeLine(line)
	}
	return encoded
}

// metadataLines serializes document metadata as two-space indented
// JSON with sorted keys, split into source lines. The cell list is
// never part of it.
func metadataLines(metadata map[string]any) ([]string, error) {
	object := make(map[string]any, len(metadata))
	maps.Copy(object, metadata)
	delete(object, notebook.CellsKey)

	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(object); err != nil {
		return nil, fmt.Errorf("encoding notebook metadata: %w", err)
	}
	return notebook.SplitSource(strings.TrimSuffix(buffer.String(), "\n")), nil
}
