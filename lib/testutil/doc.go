// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for litnb packages.
//
// [SplitLines] turns a text literal into the newline-terminated line
// slice the chunk codec consumes, so tests can write expected streams
// as readable multi-line strings.
//
// [WriteFile] and [ReadFile] wrap file setup and inspection in
// t.TempDir so that command tests can exercise the file-path input
// mode without cleanup code.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no litnb-internal dependencies.
package testutil
