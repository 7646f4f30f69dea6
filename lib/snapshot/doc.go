// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot stores a round-trip stream as a compact,
// self-verifying file (conventionally with a .litz extension).
//
// A snapshot is a single CBOR map ([Envelope]) holding the format
// version, the compression algorithm, the uncompressed size, a BLAKE3
// digest of the uncompressed stream, and the (possibly compressed)
// payload. [Unpack] refuses a snapshot whose decompressed payload does
// not match its digest, so a corrupted or truncated file never yields a
// stream that would then decode into a silently different notebook.
// Envelopes that cannot be decoded or decompressed fail with
// [ErrCorrupt].
//
// zstd is the default compression. LZ4 trades ratio for speed. When compression
// would not make the payload smaller, [Pack] stores it uncompressed and
// records [CompressionNone].
package snapshot
