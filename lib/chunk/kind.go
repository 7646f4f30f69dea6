// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunk

import "github.com/bureau-foundation/litnb/lib/notebook"

// Kind identifies what a chunk carries. The three code kinds are the
// [notebook.Tag] values; the rest are fixed by the stream format.
// These names appear in marker lines, so changing them breaks every
// existing stream.
type Kind string

const (
	// KindModule, KindNotebook, and KindTest carry a code block with
	// the corresponding tag. The payload is stored verbatim.
	KindModule   Kind = Kind(notebook.TagModule)
	KindNotebook Kind = Kind(notebook.TagNotebook)
	KindTest     Kind = Kind(notebook.TagTest)

	// KindMarkdown carries a comment-encoded prose block.
	KindMarkdown Kind = "markdown"

	// KindMetadata carries the comment-encoded document metadata as
	// JSON. It appears once, after the last block.
	KindMetadata Kind = "metadata"

	// KindFinish is the empty terminal chunk. It exists only so the
	// last real chunk is closed by a marker.
	KindFinish Kind = "finish"
)

// Valid reports whether k is one of the kinds the decoder can
// reconstruct.
func (k Kind) Valid() bool {
	switch k {
	case KindModule, KindNotebook, KindTest, KindMarkdown, KindMetadata, KindFinish:
		return true
	}
	return false
}

// IsCode reports whether k carries a code block.
func (k Kind) IsCode() bool {
	return k == KindModule || k == KindNotebook || k == KindTest
}

// Tag returns the code tag for a code kind, and false for any other
// kind.
func (k Kind) Tag() (notebook.Tag, bool) {
	if !k.IsCode() {
		return "", false
	}
	return notebook.Tag(k), true
}

// KindForTag returns the chunk kind that carries code blocks with tag.
// Unrecognized tags map to [KindModule], matching the classifier
// default.
func KindForTag(tag notebook.Tag) Kind {
	if !tag.Valid() {
		return KindModule
	}
	return Kind(tag)
}
