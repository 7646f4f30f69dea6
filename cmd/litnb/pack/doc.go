// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pack implements "litnb pack" and "litnb unpack", which store
// a round-trip stream as a compressed, digest-verified snapshot (see
// [snapshot.Envelope]) and restore it byte for byte.
package pack

import (
	"errors"

	"github.com/bureau-foundation/litnb/cmd/litnb/cli"
	"github.com/bureau-foundation/litnb/lib/chunk"
	"github.com/bureau-foundation/litnb/lib/snapshot"
)

// SnapshotExtension is the file extension pack gives snapshots when it
// picks the output name itself.
const SnapshotExtension = ".litz"

// Commands returns the snapshot commands in help order.
func Commands() []*cli.Command {
	return []*cli.Command{
		packCommand(),
		unpackCommand(),
	}
}

// snapshotError maps a snapshot or stream failure onto a tool error:
// anything wrong with the bytes the user handed us is a validation
// error, everything else is internal.
func snapshotError(name string, err error) error {
	var decodeError *chunk.DecodeError
	switch {
	case errors.As(err, &decodeError),
		errors.Is(err, snapshot.ErrDigestMismatch),
		errors.Is(err, snapshot.ErrUnsupportedVersion),
		errors.Is(err, snapshot.ErrCorrupt):
		return cli.Validation("%s: %w", name, err)
	default:
		return cli.Internal("%s: %w", name, err)
	}
}
