// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides litnb's standard CBOR encoding configuration.
//
// litnb uses two serialization formats with a clear boundary:
//
//   - JSON for anything a person edits or another tool reads: notebook
//     files, the metadata chunk of a round-trip stream, and CLI --json
//     output.
//   - CBOR for litnb's own binary files: the snapshot envelope written
//     by "litnb pack".
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
// Packing the same stream twice produces identical bytes, so snapshot
// files can be compared and content-addressed directly.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For files and pipes:
//
//	encoder := codec.NewEncoder(file)
//	decoder := codec.NewDecoder(file)
//
// # Struct Tag Rules
//
// Types only ever serialized as CBOR use `cbor` tags. Types that also
// appear in JSON output use `json` tags, which fxamacker/cbor reads as
// a fallback when `cbor` tags are absent. Never put both on one field.
package codec
