// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunk

import (
	"fmt"
	"strings"
)

// CommentPrefix is prepended to every non-blank prose and metadata
// line so the stream stays a valid source file.
const CommentPrefix = "#: "

// EncodeLine comment-encodes one line by prepending [CommentPrefix].
// Whitespace-only lines, including the empty line, are returned
// unchanged so blank lines in prose stay blank in the stream.
func EncodeLine(line string) string {
	if isBlank(line) {
		return line
	}
	return CommentPrefix + line
}

// DecodeLine reverses [EncodeLine]. Whitespace-only lines pass through
// unchanged; lines starting with [CommentPrefix] lose the prefix. Any
// other line is an error wrapping [ErrMalformedComment]: dropping or
// guessing at such a line would silently corrupt the block.
func DecodeLine(line string) (string, error) {
	if isBlank(line) {
		return line, nil
	}
	decoded, found := strings.CutPrefix(line, CommentPrefix)
	if !found {
		return "", fmt.Errorf("%w: %q", ErrMalformedComment, strings.TrimRight(line, "\r\n"))
	}
	return decoded, nil
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
