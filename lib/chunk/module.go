// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunk

import "github.com/bureau-foundation/litnb/lib/notebook"

// ModuleOptions configures [ProjectModule].
type ModuleOptions struct {
	// ChunkMarkers precedes each emitted code block with its marker
	// line, so readers of the module can find the originating cell.
	ChunkMarkers bool

	// MarkerWidth is the marker line width; zero means
	// [DefaultMarkerWidth]. Widths below [MinMarkerWidth] are widened
	// as [FormatMarker] describes.
	MarkerWidth int
}

// ProjectModule extracts the importable module from doc and returns
// its lines, each terminated by "\n".
//
// When the first block is prose it becomes the module docstring: its
// lines verbatim between triple quotes. After that, every code block
// whose resolved tag is [notebook.TagModule] and whose source is not
// empty is emitted verbatim. Notebook and test code, prose after the
// first block, and other cell types are left out. Marker indices are
// block positions in doc, so they have gaps where blocks were left out.
//
// The projection is one-way: the output has no metadata or finish
// chunk and is not meant to be decoded.
func ProjectModule(doc *notebook.Document, options ModuleOptions) []string {
	stream := streamBuilder{markerWidth: options.MarkerWidth}

	for position, block := range doc.Blocks {
		switch {
		case position == 0 && block.IsProse():
			stream.line("")
			stream.line(`"""`)
			stream.source(block.Source)
			stream.line(`"""`)
		case block.IsCode():
			if notebook.JoinSource(block.Source) == "" || block.ResolvedTag() != notebook.TagModule {
				continue
			}
			if options.ChunkMarkers {
				stream.separator(uint32(position), KindModule)
			}
			stream.source(block.Source)
		}
	}

	return notebook.SplitSource(stream.text.String())
}
