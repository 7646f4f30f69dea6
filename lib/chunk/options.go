// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunk

import (
	"fmt"
	"log/slog"
)

// Options configures [Encode] and [Decode]. The zero value is ready to
// use: default marker width, no logging.
type Options struct {
	// MarkerWidth is the width marker lines are padded to. Zero means
	// [DefaultMarkerWidth]; otherwise it must be at least
	// [MinMarkerWidth]. Decoding accepts markers of any width.
	MarkerWidth int

	// Logger receives diagnostics: skipped blocks while encoding,
	// markers found and out-of-sequence indices while decoding. Nil
	// discards them.
	Logger *slog.Logger
}

func (o Options) validate() error {
	if o.MarkerWidth != 0 && o.MarkerWidth < MinMarkerWidth {
		return fmt.Errorf("%w: %d, need at least %d", ErrMarkerWidth, o.MarkerWidth, MinMarkerWidth)
	}
	return nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}
