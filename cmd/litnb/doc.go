// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// litnb converts Jupyter notebooks to and from a line-oriented
// round-trip stream, and extracts a notebook's module code as an
// importable source file.
//
// Usage:
//
//	litnb encode [flags] [notebook.ipynb]
//	litnb decode [flags] [stream]
//	litnb module [flags] [notebook.ipynb]
//	litnb inspect [flags] [stream]
//	litnb verify [flags] [notebook.ipynb]
//	litnb pack [flags] [stream]
//	litnb unpack [flags] [snapshot.litz]
//	litnb version [--json]
//
// Every command reads the file named by its last argument, or stdin
// when there is none or it is "-". Run "litnb <command> --help" for
// the flags of each command.
//
// Exit codes: 0 on success, 2 for invalid input or usage, 1 for any
// other failure, including a notebook that fails "litnb verify".
package main
