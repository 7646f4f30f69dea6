// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package notebook

// CellType is the Jupyter cell type of a block.
type CellType string

const (
	// CellCode is an executable code block carrying a [Tag].
	CellCode CellType = "code"

	// CellMarkdown is a prose block.
	CellMarkdown CellType = "markdown"

	// CellRaw is a Jupyter raw cell. It has no representation in the
	// chunk stream.
	CellRaw CellType = "raw"
)

// CellsKey is the top-level nbformat key holding the cell list. It is
// never part of [Document.Metadata]; the block list is stored
// separately in [Document.Blocks].
const CellsKey = "cells"

// Block is one cell of a document.
type Block struct {
	// Type is the cell type.
	Type CellType

	// Tag is the content disposition of a code block. It is ignored
	// for other cell types.
	Tag Tag

	// Source holds the block's lines. Every line except the last ends
	// with its line terminator.
	Source []string

	// Metadata is the per-cell metadata carried by the nbformat
	// encoding. The chunk stream has no slot for it, so blocks
	// reconstructed from a stream always have nil Metadata.
	Metadata map[string]any
}

// Code returns a code block with the given tag and source lines.
func Code(tag Tag, source ...string) Block {
	return Block{Type: CellCode, Tag: tag, Source: source}
}

// Prose returns a markdown block with the given source lines.
func Prose(source ...string) Block {
	return Block{Type: CellMarkdown, Source: source}
}

// IsCode reports whether the block is a code block.
func (b Block) IsCode() bool { return b.Type == CellCode }

// IsProse reports whether the block is a markdown block.
func (b Block) IsProse() bool { return b.Type == CellMarkdown }

// ResolvedTag returns the block's tag, falling back to classifying the
// first source line when the tag is unset. Blocks built by [Read] and
// by the chunk decoder always have an explicit tag; the fallback
// covers blocks assembled by hand.
func (b Block) ResolvedTag() Tag {
	if b.Tag.Valid() {
		return b.Tag
	}
	if len(b.Source) == 0 {
		return TagModule
	}
	return Classify(b.Source[0])
}

// Document is an ordered sequence of blocks plus document-level
// metadata. Metadata is opaque to litnb: it is any JSON-compatible
// key/value data and never contains [CellsKey].
type Document struct {
	Blocks   []Block
	Metadata map[string]any
}
