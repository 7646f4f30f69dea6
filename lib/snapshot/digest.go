// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 keyed hash of a round-trip stream.
type Digest [32]byte

// streamDomainKey separates stream digests from any other BLAKE3 use.
// Changing it invalidates every existing snapshot. The bytes are the
// ASCII domain name, zero-padded to 32 bytes.
var streamDomainKey = [32]byte{
	'l', 'i', 't', 'n', 'b', '.', 's', 't', 'r', 'e', 'a', 'm',
}

// Sum returns the digest of a round-trip stream's bytes.
func Sum(stream []byte) Digest {
	// NewKeyed only fails for a key that is not 32 bytes.
	hasher, err := blake3.NewKeyed(streamDomainKey[:])
	if err != nil {
		panic("snapshot: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(stream)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// String returns the hex encoding used in CLI output and logs.
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// MarshalText encodes the digest as hex, so it reads the same in JSON
// output and CBOR diagnostic notation.
func (digest Digest) MarshalText() ([]byte, error) {
	return []byte(digest.String()), nil
}

// UnmarshalText parses a 64-character hex digest.
func (digest *Digest) UnmarshalText(text []byte) error {
	parsed, err := ParseDigest(string(text))
	if err != nil {
		return err
	}
	*digest = parsed
	return nil
}

// ParseDigest parses a 64-character hex string into a Digest.
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing stream digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("stream digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}
