// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package notebook

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// invalidModuleName matches anything that cannot appear in a module
// name: whitespace and non-word characters.
var invalidModuleName = regexp.MustCompile(`[\s\W]+`)

// ModuleFilename derives the module file name for a notebook file name.
// Notebooks destined to become modules are named with Capitalized,
// underscore-delimited words; the module name is the lower-cased base
// name with extension appended. Names containing spaces, dashes, or
// other non-word characters are rejected because they cannot be
// imported as modules.
//
//	ModuleFilename("Literate_Notebook.ipynb", ".py") // "literate_notebook.py"
func ModuleFilename(notebookName, extension string) (string, error) {
	base := filepath.Base(notebookName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		return "", fmt.Errorf("notebook name %q has an empty base name", notebookName)
	}
	if invalidModuleName.MatchString(base) {
		return "", fmt.Errorf("notebook name %q contains characters not allowed in a module name", notebookName)
	}
	return strings.ToLower(base) + extension, nil
}
