// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package notebook defines the structured document that litnb converts
// to and from its flat chunk stream, and reads and writes that document
// in the Jupyter nbformat-4 JSON encoding.
//
// A [Document] is an ordered list of [Block] values plus a metadata map
// attached to the document as a whole. Blocks are code (tagged with a
// [Tag]) or prose (markdown). Other Jupyter cell types, such as raw
// cells, are carried as blocks of their own [CellType] so that
// consumers can decide what to do with them; the chunk encoder skips
// them with a warning.
//
// Block source follows the Jupyter convention: every line except the
// last carries its line terminator. [SplitSource] and [JoinSource]
// convert between that form and plain text.
//
// [Classify] is the tag classifier: it reads the first word of a
// comment line ("# test ...") and maps it onto the closed [Tag] set,
// defaulting to [TagModule].
//
// This package depends on no other litnb packages.
package notebook
