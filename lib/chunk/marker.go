// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunk

import (
	"strconv"
	"strings"
)

// DefaultMarkerWidth is the column width marker lines are padded or
// truncated to.
const DefaultMarkerWidth = 80

// MinMarkerWidth is the narrowest width that leaves filler after every
// head the encoder can write: the largest index with the longest kind
// name ("markdown", "metadata", "notebook"), plus one "#".
const MinMarkerWidth = len(markerPrefix+"4294967295"+markerType+"notebook ") + 1

const (
	markerPrefix = "#### Cell #"
	markerType   = " Type: "
	markerFiller = "#"
)

// FormatMarker returns the marker line (without terminator) that opens
// chunk index of the given kind: the head "#### Cell #<index> Type:
// <kind> " followed by "#" filler, cut to exactly width bytes. A width
// of zero or less means [DefaultMarkerWidth].
//
// The line always keeps at least one filler byte, so it parses with
// [ParseMarker]. A width too narrow for the head yields a line one byte
// longer than the head instead of width bytes; widths of at least
// [MinMarkerWidth] are always honored exactly.
func FormatMarker(index uint32, kind Kind, width int) string {
	if width <= 0 {
		width = DefaultMarkerWidth
	}
	head := markerPrefix + strconv.FormatUint(uint64(index), 10) + markerType + string(kind) + " "
	width = max(width, len(head)+1)
	line := head + strings.Repeat(markerFiller, width-len(head))
	return line[:width]
}

// ParseMarker recognizes a marker line and returns its index and kind.
// The line must be exactly the shape [FormatMarker] produces: prefix,
// decimal digits, " Type: ", one word of letters, digits, or
// underscores, a space, and a run of one or more "#" through the end
// of the line. A single trailing "\n" or "\r\n" is ignored. The filler
// length is not checked, so markers written with any width parse.
//
// The kind is returned as written; callers decide whether it is
// [Kind.Valid].
func ParseMarker(line string) (uint32, Kind, bool) {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	rest, found := strings.CutPrefix(line, markerPrefix)
	if !found {
		return 0, "", false
	}

	digits := 0
	for digits < len(rest) && isDigit(rest[digits]) {
		digits++
	}
	if digits == 0 {
		return 0, "", false
	}
	index, err := strconv.ParseUint(rest[:digits], 10, 32)
	if err != nil {
		return 0, "", false
	}

	rest, found = strings.CutPrefix(rest[digits:], markerType)
	if !found {
		return 0, "", false
	}

	word := 0
	for word < len(rest) && isWordByte(rest[word]) {
		word++
	}
	if word == 0 {
		return 0, "", false
	}
	kind := Kind(rest[:word])

	filler, found := strings.CutPrefix(rest[word:], " ")
	if !found || filler == "" || strings.Trim(filler, markerFiller) != "" {
		return 0, "", false
	}

	return uint32(index), kind, true
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func isWordByte(b byte) bool {
	return isDigit(b) || b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
