// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
)

// WriteFile creates name inside a fresh t.TempDir with the given
// content and returns its absolute path.
//
//	path := testutil.WriteFile(t, "Example.ipynb", notebookJSON)
func WriteFile(t interface {
	Helper()
	Fatalf(format string, args ...any)
	TempDir() string
}, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of path, failing the test if it cannot
// be read.
func ReadFile(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
