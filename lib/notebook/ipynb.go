// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package notebook

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
)

// Read parses an nbformat-4 JSON notebook.
//
// Cell source may be either a single string or a list of strings, as
// nbformat allows both; the result is always split into lines with
// [SplitSource] semantics. Code cells are tagged with [Classify] on
// their first line. Every top-level key except "cells" becomes
// document metadata. Numbers are preserved as [json.Number] so that
// re-encoding reproduces them exactly.
func Read(r io.Reader) (*Document, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing notebook: %w", err)
	}

	cellsValue, ok := raw[CellsKey]
	if !ok {
		return nil, fmt.Errorf("parsing notebook: missing %q list", CellsKey)
	}
	cells, ok := cellsValue.([]any)
	if !ok {
		return nil, fmt.Errorf("parsing notebook: %q is %T, want a list", CellsKey, cellsValue)
	}

	document := &Document{
		Blocks:   make([]Block, 0, len(cells)),
		Metadata: make(map[string]any, len(raw)),
	}
	for key, value := range raw {
		if key != CellsKey {
			document.Metadata[key] = value
		}
	}

	for index, cellValue := range cells {
		block, err := parseCell(cellValue)
		if err != nil {
			return nil, fmt.Errorf("parsing notebook: cell %d: %w", index, err)
		}
		document.Blocks = append(document.Blocks, block)
	}

	return document, nil
}

// ReadFile reads and parses the notebook at path.
func ReadFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer file.Close()

	document, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return document, nil
}

func parseCell(value any) (Block, error) {
	cell, ok := value.(map[string]any)
	if !ok {
		return Block{}, fmt.Errorf("cell is %T, want an object", value)
	}

	cellType, ok := cell["cell_type"].(string)
	if !ok || cellType == "" {
		return Block{}, fmt.Errorf("missing cell_type")
	}

	source, err := parseSource(cell["source"])
	if err != nil {
		return Block{}, err
	}

	block := Block{Type: CellType(cellType), Source: source}
	if metadata, ok := cell["metadata"].(map[string]any); ok {
		block.Metadata = metadata
	}
	if block.Type == CellCode {
		block.Tag = block.ResolvedTag()
	}
	return block, nil
}

// parseSource accepts the two nbformat encodings of cell source: a
// single string, or a list of strings that concatenate to the text.
func parseSource(value any) ([]string, error) {
	switch source := value.(type) {
	case nil:
		return nil, nil
	case string:
		return SplitSource(source), nil
	case []any:
		var text string
		for index, element := range source {
			line, ok := element.(string)
			if !ok {
				return nil, fmt.Errorf("source line %d is %T, want a string", index, element)
			}
			text += line
		}
		return SplitSource(text), nil
	default:
		return nil, fmt.Errorf("source is %T, want a string or list of strings", value)
	}
}

// Write encodes doc as nbformat JSON, using the one-space indentation
// Jupyter itself writes. Code cells without outputs get the empty
// execution_count and outputs fields nbformat requires.
func Write(w io.Writer, doc *Document) error {
	notebook := make(map[string]any, len(doc.Metadata)+1)
	maps.Copy(notebook, doc.Metadata)

	cells := make([]map[string]any, 0, len(doc.Blocks))
	for _, block := range doc.Blocks {
		cells = append(cells, encodeCell(block))
	}
	notebook[CellsKey] = cells

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(notebook); err != nil {
		return fmt.Errorf("encoding notebook: %w", err)
	}
	return nil
}

// WriteFile writes doc to path as nbformat JSON.
func WriteFile(path string, doc *Document) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := Write(file, doc); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func encodeCell(block Block) map[string]any {
	metadata := block.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	source := block.Source
	if source == nil {
		source = []string{}
	}

	cell := map[string]any{
		"cell_type": string(block.Type),
		"metadata":  metadata,
		"source":    source,
	}
	if block.Type == CellCode {
		cell["execution_count"] = nil
		cell["outputs"] = []any{}
	}
	return cell
}
