// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/bureau-foundation/litnb/lib/codec"
)

// FormatVersion is the envelope version written by Pack. Unpack
// rejects any other version.
const FormatVersion = 1

// MaxStreamSize bounds the uncompressed size Unpack will allocate for.
const MaxStreamSize = 1 << 30

// An envelope may claim a stream at most maxExpansion times the size
// of its payload, or expansionFloor bytes, whichever is larger. Open
// checks this before allocating, so a small file cannot demand a large
// buffer.
const (
	maxExpansion   = 1 << 12
	expansionFloor = 1 << 20
)

// maxSizeFor returns the largest stream an envelope with a payload of
// payloadSize bytes may claim.
func maxSizeFor(payloadSize int) int {
	return min(MaxStreamSize, max(expansionFloor, payloadSize*maxExpansion))
}

var (
	// ErrDigestMismatch is returned by Unpack when the decompressed
	// payload does not hash to the recorded digest.
	ErrDigestMismatch = errors.New("snapshot digest mismatch")

	// ErrUnsupportedVersion is returned by Unpack for an envelope
	// written by an incompatible version of litnb.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")

	// ErrCorrupt is returned when the envelope cannot be decoded or its
	// payload does not decompress to the recorded size.
	ErrCorrupt = errors.New("corrupt snapshot")
)

// Envelope is the on-disk form of a snapshot.
type Envelope struct {
	Version     int         `cbor:"version"`
	Compression Compression `cbor:"compression"`

	// Size is the length of the uncompressed stream in bytes.
	Size int `cbor:"size"`

	// Digest is [Sum] of the uncompressed stream.
	Digest Digest `cbor:"digest"`

	Payload []byte `cbor:"payload"`
}

// Seal builds the envelope for stream. When compression does not
// shrink the stream, the payload is stored uncompressed and the
// envelope records [CompressionNone]. When zstd shrinks it past the
// expansion bound Open enforces, LZ4 is used instead; its ratio stays
// well inside the bound.
func Seal(stream []byte, compression Compression) (*Envelope, error) {
	if len(stream) > MaxStreamSize {
		return nil, fmt.Errorf("stream is %d bytes, the limit is %d", len(stream), MaxStreamSize)
	}
	payload, compression, err := sealPayload(stream, compression)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		Version:     FormatVersion,
		Compression: compression,
		Size:        len(stream),
		Digest:      Sum(stream),
		Payload:     payload,
	}, nil
}

func sealPayload(stream []byte, compression Compression) ([]byte, Compression, error) {
	payload, err := compress(stream, compression)
	switch {
	case errors.Is(err, errIncompressible):
		return stream, CompressionNone, nil
	case err != nil:
		return nil, 0, err
	case len(stream) <= maxSizeFor(len(payload)):
		return payload, compression, nil
	case compression != CompressionLZ4:
		return sealPayload(stream, CompressionLZ4)
	default:
		return stream, CompressionNone, nil
	}
}

// Open decompresses and verifies the envelope, returning the stream.
func (envelope *Envelope) Open() ([]byte, error) {
	if envelope.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d (this build reads %d)", ErrUnsupportedVersion, envelope.Version, FormatVersion)
	}
	if envelope.Size < 0 || envelope.Size > MaxStreamSize {
		return nil, fmt.Errorf("%w: size %d is outside [0, %d]", ErrCorrupt, envelope.Size, MaxStreamSize)
	}
	if limit := maxSizeFor(len(envelope.Payload)); envelope.Size > limit {
		return nil, fmt.Errorf("%w: size %d is implausible for a %d-byte payload (limit %d)",
			ErrCorrupt, envelope.Size, len(envelope.Payload), limit)
	}
	stream, err := decompress(envelope.Payload, envelope.Compression, envelope.Size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if actual := Sum(stream); actual != envelope.Digest {
		return nil, fmt.Errorf("%w: recorded %s, computed %s", ErrDigestMismatch, envelope.Digest, actual)
	}
	return stream, nil
}

// Pack seals stream and writes the envelope to w.
func Pack(w io.Writer, stream []byte, compression Compression) (*Envelope, error) {
	envelope, err := Seal(stream, compression)
	if err != nil {
		return nil, err
	}
	if err := codec.NewEncoder(w).Encode(envelope); err != nil {
		return nil, fmt.Errorf("writing snapshot: %w", err)
	}
	return envelope, nil
}

// Read reads one envelope from r without opening it.
func Read(r io.Reader) (*Envelope, error) {
	var envelope Envelope
	if err := codec.NewDecoder(r).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return &envelope, nil
}

// Unpack reads an envelope from r and returns the verified stream
// along with the envelope it came from.
func Unpack(r io.Reader) ([]byte, *Envelope, error) {
	envelope, err := Read(r)
	if err != nil {
		return nil, nil, err
	}
	stream, err := envelope.Open()
	if err != nil {
		return nil, envelope, err
	}
	return stream, envelope, nil
}

// Describe returns the CBOR diagnostic notation of an encoded
// envelope, with the payload elided so the output stays readable.
func Describe(data []byte) (string, error) {
	envelope, err := Read(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	header := *envelope
	header.Payload = nil
	encoded, err := codec.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("encoding snapshot header: %w", err)
	}
	return codec.Diagnose(encoded)
}
