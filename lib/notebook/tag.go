// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package notebook

import (
	"fmt"
	"strings"
)

// Tag is the content disposition of a code block. It decides which
// projections include the block: only [TagModule] blocks reach the
// generated module, while [TagNotebook] and [TagTest] blocks live only
// in the notebook and its round-trip stream.
type Tag string

const (
	// TagModule marks code that belongs in the generated module. It is
	// the default for blocks whose first line does not name a tag.
	TagModule Tag = "module"

	// TagNotebook marks exploratory code that stays in the notebook.
	TagNotebook Tag = "notebook"

	// TagTest marks test code.
	TagTest Tag = "test"
)

// Tags lists the recognized tags in a stable order.
var Tags = []Tag{TagModule, TagNotebook, TagTest}

// Valid reports whether t is one of the recognized tags.
func (t Tag) Valid() bool {
	switch t {
	case TagModule, TagNotebook, TagTest:
		return true
	}
	return false
}

// ParseTag parses a tag name, case-insensitively.
func ParseTag(name string) (Tag, error) {
	tag := Tag(strings.ToLower(name))
	if !tag.Valid() {
		return "", fmt.Errorf("unknown tag %q (want one of module, notebook, test)", name)
	}
	return tag, nil
}

// Classify returns the tag named by a block's first line. The line must
// start with "#", optionally followed by whitespace, then a run of
// ASCII letters; that word, case-folded, is the candidate tag. Lines
// that do not have this shape, or whose word is not a recognized tag,
// classify as [TagModule].
//
//	Classify("# test the parser")  // TagTest
//	Classify("#Notebook")          // TagNotebook
//	Classify("x = 1")              // TagModule
func Classify(line string) Tag {
	rest, found := strings.CutPrefix(line, "#")
	if !found {
		return TagModule
	}
	rest = strings.TrimLeft(rest, " \t\n\r\f\v")

	end := 0
	for end < len(rest) && isASCIILetter(rest[end]) {
		end++
	}
	if end == 0 {
		return TagModule
	}

	tag := Tag(strings.ToLower(rest[:end]))
	if tag.Valid() {
		return tag
	}
	return TagModule
}

func isASCIILetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
