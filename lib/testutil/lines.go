// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import "strings"

// SplitLines splits text after every "\n", keeping terminators. A
// trailing "\n" does not produce an empty final element.
//
//	testutil.SplitLines("a\n\nb\n") // ["a\n", "\n", "b\n"]
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
