// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package notebook

import "strings"

// SplitSource splits text into lines that keep their "\n" terminators.
// A final line without a terminator is kept as is; a trailing "\n"
// does not produce an empty final element.
//
//	SplitSource("a\nb")   // ["a\n", "b"]
//	SplitSource("a\nb\n") // ["a\n", "b\n"]
//	SplitSource("")       // nil
func SplitSource(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinSource concatenates source lines back into text. It is the
// inverse of [SplitSource].
func JoinSource(lines []string) string {
	return strings.Join(lines, "")
}
