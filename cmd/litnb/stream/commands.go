// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import "github.com/bureau-foundation/litnb/cmd/litnb/cli"

// Commands returns the stream conversion commands in help order.
func Commands() []*cli.Command {
	return []*cli.Command{
		encodeCommand(),
		decodeCommand(),
		moduleCommand(),
		inspectCommand(),
		verifyCommand(),
	}
}
