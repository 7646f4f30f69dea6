// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package notebook

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/bureau-foundation/litnb/lib/testutil"
)

const sampleNotebook = `{
 "cells": [
  {
   "cell_type": "markdown",
   "metadata": {},
   "source": ["# Title\n", "\n", "Some prose."]
  },
  {
   "cell_type": "code",
   "execution_count": 3,
   "metadata": {"collapsed": true},
   "outputs": [],
   "source": "import os\nimport json"
  },
  {
   "cell_type": "code",
   "execution_count": null,
   "metadata": {},
   "outputs": [],
   "source": ["# test\n", "assert 1 == 1"]
  },
  {
   "cell_type": "raw",
   "metadata": {},
   "source": []
  }
 ],
 "metadata": {"kernelspec": {"name": "python3"}},
 "nbformat": 4,
 "nbformat_minor": 2
}`

func TestRead(t *testing.T) {
	document, err := Read(strings.NewReader(sampleNotebook))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if len(document.Blocks) != 4 {
		t.Fatalf("got %d blocks, want 4", len(document.Blocks))
	}

	prose := document.Blocks[0]
	if !prose.IsProse() {
		t.Errorf("block 0 type = %q, want markdown", prose.Type)
	}
	if want := []string{"# Title\n", "\n", "Some prose."}; !slices.Equal(prose.Source, want) {
		t.Errorf("block 0 source = %q, want %q", prose.Source, want)
	}

	imports := document.Blocks[1]
	if !imports.IsCode() || imports.Tag != TagModule {
		t.Errorf("block 1 = %s/%s, want code/module", imports.Type, imports.Tag)
	}
	if want := []string{"import os\n", "import json"}; !slices.Equal(imports.Source, want) {
		t.Errorf("block 1 source = %q, want %q", imports.Source, want)
	}
	if imports.Metadata["collapsed"] != true {
		t.Errorf("block 1 metadata = %v, want collapsed=true", imports.Metadata)
	}

	if document.Blocks[2].Tag != TagTest {
		t.Errorf("block 2 tag = %q, want test", document.Blocks[2].Tag)
	}
	if document.Blocks[3].Type != CellRaw {
		t.Errorf("block 3 type = %q, want raw", document.Blocks[3].Type)
	}

	if _, ok := document.Metadata[CellsKey]; ok {
		t.Error("document metadata contains the cell list")
	}
	if document.Metadata["nbformat"] != json.Number("4") {
		t.Errorf("nbformat = %#v, want json.Number(\"4\")", document.Metadata["nbformat"])
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "cells:"},
		{"missing cells", `{"metadata": {}}`},
		{"cells not a list", `{"cells": {}}`},
		{"cell not an object", `{"cells": [1]}`},
		{"missing cell type", `{"cells": [{"source": []}]}`},
		{"bad source line", `{"cells": [{"cell_type": "code", "source": [1]}]}`},
		{"bad source type", `{"cells": [{"cell_type": "code", "source": 7}]}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(test.input)); err == nil {
				t.Error("Read succeeded, want error")
			}
		})
	}
}

func TestWriteReadRoundtrip(t *testing.T) {
	original, err := Read(strings.NewReader(sampleNotebook))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	var buffer bytes.Buffer
	if err := Write(&buffer, original); err != nil {
		t.Fatalf("Write: %v", err)
	}

	reread, err := Read(&buffer)
	if err != nil {
		t.Fatalf("Read after Write: %v", err)
	}
	if len(reread.Blocks) != len(original.Blocks) {
		t.Fatalf("got %d blocks after round trip, want %d", len(reread.Blocks), len(original.Blocks))
	}
	for index := range original.Blocks {
		want, got := original.Blocks[index], reread.Blocks[index]
		if got.Type != want.Type || got.Tag != want.Tag || !slices.Equal(got.Source, want.Source) {
			t.Errorf("block %d = %+v, want %+v", index, got, want)
		}
	}
	if reread.Metadata["nbformat_minor"] != json.Number("2") {
		t.Errorf("nbformat_minor = %#v after round trip", reread.Metadata["nbformat_minor"])
	}
}

func TestWriteCodeCellFields(t *testing.T) {
	document := &Document{Blocks: []Block{Code(TagModule), Prose("text")}}

	var buffer bytes.Buffer
	if err := Write(&buffer, document); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var decoded struct {
		Cells []map[string]any `json:"cells"`
	}
	if err := json.Unmarshal(buffer.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	code := decoded.Cells[0]
	if _, ok := code["execution_count"]; !ok {
		t.Error("code cell missing execution_count")
	}
	if outputs, ok := code["outputs"].([]any); !ok || len(outputs) != 0 {
		t.Errorf("code cell outputs = %#v, want []", code["outputs"])
	}
	if source, ok := code["source"].([]any); !ok || len(source) != 0 {
		t.Errorf("empty code cell source = %#v, want []", code["source"])
	}
	if _, ok := decoded.Cells[1]["outputs"]; ok {
		t.Error("markdown cell has outputs")
	}
}

func TestReadFileWriteFile(t *testing.T) {
	path := testutil.WriteFile(t, "Sample.ipynb", sampleNotebook)

	document, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	output := path + ".copy"
	if err := WriteFile(output, document); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if content := testutil.ReadFile(t, output); !strings.Contains(content, `"nbformat": 4`) {
		t.Errorf("written notebook missing nbformat:\n%s", content)
	}

	if _, err := ReadFile(path + ".missing"); err == nil {
		t.Error("ReadFile of a missing file succeeded")
	}
}
