// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chunk

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedComment is returned when a prose or metadata line is
	// neither blank nor prefixed with [CommentPrefix].
	ErrMalformedComment = errors.New("line is not comment-encoded")

	// ErrNoChunkMarker is returned when the input holds no marker line
	// at all.
	ErrNoChunkMarker = errors.New("no chunk marker found")

	// ErrUnknownChunkKind is returned for a well-formed marker whose
	// kind has no reconstruction rule.
	ErrUnknownChunkKind = errors.New("unknown chunk kind")

	// ErrInvalidMetadata is returned when the metadata chunk payload is
	// not a JSON object.
	ErrInvalidMetadata = errors.New("invalid metadata payload")

	// ErrMarkerWidth is returned by [Encode] for a marker width below
	// [MinMarkerWidth].
	ErrMarkerWidth = errors.New("marker width too narrow")
)

// DecodeError locates a decode failure in the stream. Err is one of the
// package's sentinel errors, possibly wrapped with more detail, so
// callers can match with errors.Is.
type DecodeError struct {
	// Line is the 1-based stream line the failure was detected on, or 0
	// when the failure is not tied to a line (no marker found).
	Line int

	// Index and Kind identify the chunk being decoded. Kind is empty
	// when no chunk was open.
	Index uint32
	Kind  Kind

	Err error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Kind != "":
		return fmt.Sprintf("line %d: chunk %d (%s): %v", e.Line, e.Index, e.Kind, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	default:
		return e.Err.Error()
	}
}

// Unwrap returns the underlying error so errors.Is matches the
// sentinel.
func (e *DecodeError) Unwrap() error { return e.Err }
