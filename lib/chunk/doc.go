// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package chunk converts a [notebook.Document] to and from a flat,
// line-oriented "round-trip" stream: an ordinary source file in which
// every block is a chunk introduced by a self-describing marker line.
//
// A stream for a document with a title cell and one code cell looks
// like this (markers are padded with "#" to 80 columns):
//
//	#### Cell #0 Type: markdown ####################################...
//
//	#: # Title
//
//	#### Cell #1 Type: module ######################################...
//
//	x = 1
//
//	#### Cell #2 Type: metadata ####################################...
//
//	#: {
//	#:   "nbformat": 4
//	#: }
//
//	#### Cell #3 Type: finish ######################################...
//
// The pieces:
//
//   - Marker lines ([FormatMarker], [ParseMarker]) carry the chunk
//     index and [Kind]. The format, including the "#" filler and the
//     80-column width, is a wire contract: streams written with a
//     different marker shape do not parse.
//   - Prose and metadata lines are comment-encoded with the "#: "
//     prefix ([EncodeLine], [DecodeLine]); code lines are stored
//     verbatim.
//   - [Encode] writes one chunk per supported block, then a metadata
//     chunk holding the document metadata as indented JSON, then an
//     empty finish chunk that closes the last real chunk.
//   - [Scanner] splits a stream back into chunks in one forward pass;
//     [Decode] turns those chunks into a document.
//   - [ProjectModule] is a one-way projection that keeps only module
//     code, for producing an importable source file.
//
// Every chunk payload is wrapped in one blank line before and after,
// and the encoder terminates the last content line itself. The decoder
// removes exactly those two lines and that one terminator, so block
// text survives a round trip byte for byte; the one normalization is a
// last line ending in a bare "\r", which reads back as a CRLF
// terminator and is stripped. Re-encoding a decoded stream reproduces
// it exactly.
//
// Decode failures are reported as [*DecodeError] values wrapping one of
// [ErrMalformedComment], [ErrNoChunkMarker], [ErrUnknownChunkKind], or
// [ErrInvalidMetadata]. Encoding never fails on block content: blocks of
// unsupported cell types are logged and skipped.
package chunk
