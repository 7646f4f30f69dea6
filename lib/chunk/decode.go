// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunk

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/litnb/lib/notebook"
)

// Decode reconstructs a document from stream lines produced by
// [Encode] (or [ReadLines]). Lines are expected to keep their "\n"
// terminators; a line without one is treated as terminated unless it
// is the last line of input.
//
// Code chunks become code blocks tagged with the chunk kind, markdown
// chunks become prose blocks, the metadata chunk replaces the document
// metadata, and finish chunks are ignored. Chunk indices are not used
// for ordering: blocks appear in stream order, and indices that do not
// run 0, 1, 2, ... are reported at Warn so hand-edited streams still
// decode.
//
// Any failure aborts the decode and no document is returned. Errors are
// [*DecodeError] values wrapping [ErrNoChunkMarker],
// [ErrMalformedComment], [ErrUnknownChunkKind], or [ErrInvalidMetadata].
func Decode(lines []string, options Options) (*notebook.Document, error) {
	logger := options.logger()
	scanner := NewScanner(lines, logger)

	document := &notebook.Document{
		Blocks:   []notebook.Block{},
		Metadata: map[string]any{},
	}

	var expected uint32
	for scanner.Scan() {
		chunk := scanner.Chunk()
		if chunk.Index != expected {
			logger.Warn("chunk index out of sequence",
				"line", chunk.Line, "index", chunk.Index, "expected", expected)
		}
		expected = chunk.Index + 1

		if err := dispatch(document, chunk); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return document, nil
}

// DecodeReader reads a whole stream from r and decodes it like
// [Decode].
func DecodeReader(r io.Reader, options Options) (*notebook.Document, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	return Decode(lines, options)
}

// ReadLines reads r to the end and splits it into lines that keep
// their "\n" terminators. A final line without a terminator is kept.
func ReadLines(r io.Reader) ([]string, error) {
	reader := bufio.NewReader(r)
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading stream: %w", err)
		}
	}
}

func dispatch(document *notebook.Document, chunk Chunk) error {
	if !chunk.Kind.Valid() {
		return chunk.errorf(chunk.Line, ErrUnknownChunkKind)
	}
	if chunk.Kind == KindFinish {
		return nil
	}

	content, err := chunk.Content()
	if err != nil {
		return err
	}

	switch chunk.Kind {
	case KindMarkdown:
		document.Blocks = append(document.Blocks, notebook.Prose(content...))
	case KindMetadata:
		metadata, err := parseMetadata(content)
		if err != nil {
			return chunk.errorf(chunk.Line, fmt.Errorf("%w: %w", ErrInvalidMetadata, err))
		}
		document.Metadata = metadata
	default:
		tag, _ := chunk.Kind.Tag()
		document.Blocks = append(document.Blocks, notebook.Code(tag, content...))
	}
	return nil
}

// parseMetadata parses the decoded metadata payload. The payload is
// meant to be edited by hand, so JSONC comments and trailing commas
// are accepted. It must hold exactly one JSON object.
func parseMetadata(lines []string) (map[string]any, error) {
	stripped := jsonc.ToJSON([]byte(strings.Join(lines, "")))

	decoder := json.NewDecoder(bytes.NewReader(stripped))
	decoder.UseNumber()

	var metadata map[string]any
	if err := decoder.Decode(&metadata); err != nil {
		return nil, err
	}
	if metadata == nil {
		return nil, errors.New("payload is null, want a JSON object")
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after the JSON object")
	}

	delete(metadata, notebook.CellsKey)
	return metadata, nil
}
