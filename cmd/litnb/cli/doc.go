// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the litnb binary.
//
// A [Command] tree dispatches on the first positional argument. Leaf
// commands declare their flags as a params struct with flag, desc, and
// default struct tags ([BindFlags]); after parsing, Run receives the
// remaining positional arguments and a logger scoped to the command.
//
// Shared behavior lives here so every command handles it the same way:
// input from a trailing file argument or stdin ([ReadInput]), output
// to a file or stdout ([WriteOutput]), --json output ([JSONOutput]),
// --config and --verbose ([CommonParams]), and categorized errors
// ([ToolError], [ExitError]) that main turns into exit codes.
package cli
