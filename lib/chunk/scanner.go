// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunk

import (
	"log/slog"
	"strings"

	"github.com/bureau-foundation/litnb/lib/notebook"
)

// Chunk is one marker-delimited section of a stream.
type Chunk struct {
	// Index and Kind are read from the marker line.
	Index uint32
	Kind  Kind

	// Line is the 1-based line number of the marker.
	Line int

	// Lines holds every line between this marker and the next (or the
	// end of input), verbatim and including the blank lines that wrap
	// the payload.
	Lines []string
}

// Content returns the chunk's logical content.
//
// For code and markdown chunks this is the block source: the wrapping
// blank lines are removed (exactly one from each end), markdown lines
// are comment-decoded, and the line terminator of the last remaining
// line is stripped. For a metadata chunk it is every payload line
// comment-decoded, untrimmed, ready to be joined and parsed as JSON.
// A finish chunk has no content.
//
// Errors are [*DecodeError] values wrapping [ErrMalformedComment] or
// [ErrUnknownChunkKind].
func (c Chunk) Content() ([]string, error) {
	switch {
	case c.Kind.IsCode():
		return blockSource(c.Lines), nil
	case c.Kind == KindMarkdown:
		decoded, err := c.decodeComments()
		if err != nil {
			return nil, err
		}
		return blockSource(decoded), nil
	case c.Kind == KindMetadata:
		return c.decodeComments()
	case c.Kind == KindFinish:
		return nil, nil
	default:
		return nil, c.errorf(c.Line, ErrUnknownChunkKind)
	}
}

func (c Chunk) decodeComments() ([]string, error) {
	decoded := make([]string, len(c.Lines))
	for offset, line := range c.Lines {
		var err error
		decoded[offset], err = DecodeLine(line)
		if err != nil {
			return nil, c.errorf(c.Line+1+offset, err)
		}
	}
	return decoded, nil
}

func (c Chunk) errorf(line int, err error) *DecodeError {
	return &DecodeError{Line: line, Index: c.Index, Kind: c.Kind, Err: err}
}

// blockSource removes the wrapping blank lines and the last line's
// terminator, then re-splits so the result follows the notebook source
// convention.
func blockSource(lines []string) []string {
	if len(lines) <= 2 {
		return nil
	}
	trimmed := make([]string, len(lines)-2)
	copy(trimmed, lines[1:len(lines)-1])
	last := len(trimmed) - 1
	trimmed[last] = trimLineTerminator(trimmed[last])
	return notebook.SplitSource(notebook.JoinSource(trimmed))
}

func trimLineTerminator(line string) string {
	if trimmed, found := strings.CutSuffix(line, "\r\n"); found {
		return trimmed
	}
	return strings.TrimSuffix(line, "\n")
}

type scanState int

const (
	// stateSeeking skips lines until the first marker.
	stateSeeking scanState = iota
	// stateAccumulating collects payload lines for the open chunk.
	stateAccumulating
	// stateDone means input is exhausted or scanning failed.
	stateDone
)

// Scanner splits a stream into chunks in a single forward pass. It
// reads its input through an explicit cursor and never looks past the
// marker that closes the current chunk. Use it like bufio.Scanner:
//
//	scanner := chunk.NewScanner(lines, logger)
//	for scanner.Scan() {
//	    c := scanner.Chunk()
//	    ...
//	}
//	if err := scanner.Err(); err != nil { ... }
//
// Lines before the first marker are ignored. The chunk still open at
// the end of input is returned as if a marker had closed it. A Scanner
// holds mutable state and must not be shared between goroutines.
type Scanner struct {
	lines  []string
	cursor int
	state  scanState

	// open is the chunk whose payload is being accumulated.
	open Chunk
	// chunk is the most recently closed chunk, returned by Chunk.
	chunk Chunk

	err    error
	logger *slog.Logger
}

// NewScanner returns a Scanner over lines, normally as [Encode] and
// [ReadLines] produce them, each keeping its terminator. Lines without
// one, such as the output of strings.Split, are given "\n" in the
// chunk payload, except the last line of input. A nil logger discards
// diagnostics.
func NewScanner(lines []string, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scanner{lines: lines, logger: logger}
}

// Scan advances to the next chunk, returning false at the end of input
// or on error.
func (s *Scanner) Scan() bool {
	if s.state == stateSeeking {
		if !s.seek() {
			s.state = stateDone
			s.err = &DecodeError{Err: ErrNoChunkMarker}
			return false
		}
		s.state = stateAccumulating
	}
	if s.state != stateAccumulating {
		return false
	}
	return s.accumulate()
}

// Chunk returns the chunk produced by the last successful Scan.
func (s *Scanner) Chunk() Chunk {
	return s.chunk
}

// Err returns the error that stopped scanning, or nil if the input was
// scanned to its end.
func (s *Scanner) Err() error {
	return s.err
}

// seek moves the cursor past the first marker line and opens its chunk.
func (s *Scanner) seek() bool {
	for s.cursor < len(s.lines) {
		line := s.lines[s.cursor]
		s.cursor++
		if opened := s.openChunk(line); opened {
			return true
		}
	}
	return false
}

// accumulate collects payload lines until the next marker or the end
// of input, then closes the open chunk.
func (s *Scanner) accumulate() bool {
	for s.cursor < len(s.lines) {
		line := s.lines[s.cursor]
		s.cursor++
		closed := s.open
		if s.openChunk(line) {
			s.chunk = closed
			return true
		}
		// Lines split without their terminators would otherwise run
		// together when the payload is joined. Only the last line of
		// input may lack one.
		if s.cursor < len(s.lines) && !strings.HasSuffix(line, "\n") {
			line += "\n"
		}
		s.open.Lines = append(s.open.Lines, line)
	}
	s.chunk = s.open
	s.open = Chunk{}
	s.state = stateDone
	return true
}

// openChunk replaces the open chunk when line is a marker.
func (s *Scanner) openChunk(line string) bool {
	index, kind, ok := ParseMarker(line)
	if !ok {
		return false
	}
	s.logger.Debug("found chunk marker", "line", s.cursor, "index", index, "kind", string(kind))
	s.open = Chunk{Index: index, Kind: kind, Line: s.cursor}
	return true
}

// Chunks scans all of lines and returns every chunk, for tools that
// list or inspect a stream without reconstructing the document.
func Chunks(lines []string, logger *slog.Logger) ([]Chunk, error) {
	scanner := NewScanner(lines, logger)
	var chunks []Chunk
	for scanner.Scan() {
		chunks = append(chunks, scanner.Chunk())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return chunks, nil
}
