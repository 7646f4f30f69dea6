// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// maxNestedLevels bounds how deep decoded values may nest. A snapshot
// envelope is a flat map; the headroom is for metadata values.
const maxNestedLevels = 64

var (
	// encoding always uses Core Deterministic Encoding (RFC 8949
	// §4.2), so equal values produce equal bytes.
	encoding = mustEncMode()

	// decoding ignores unknown fields so older builds can read
	// snapshots from newer ones, but rejects duplicate map keys, which
	// would make a snapshot's header ambiguous.
	decoding = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	options := cbor.CoreDetEncOptions()
	// Types with MarshalText, such as snapshot.Compression, are
	// written as their names.
	options.TextMarshaler = cbor.TextMarshalerTextString
	mode, err := options.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
	return mode
}

func mustDecMode() cbor.DecMode {
	mode, err := cbor.DecOptions{
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		MaxNestedLevels: maxNestedLevels,
		// Maps decoded into any must be usable with encoding/json.
		DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
		TextUnmarshaler: cbor.TextUnmarshalerTextString,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
	return mode
}

// Marshal returns the deterministic CBOR encoding of v.
func Marshal(v any) ([]byte, error) {
	return encoding.Marshal(v)
}

// Unmarshal decodes one CBOR data item from data into v.
func Unmarshal(data []byte, v any) error {
	return decoding.Unmarshal(data, v)
}

// Encoder and Decoder are the cbor stream types, aliased so callers
// import only this package.
type (
	Encoder = cbor.Encoder
	Decoder = cbor.Decoder
)

// NewEncoder returns an Encoder writing deterministic CBOR to w.
func NewEncoder(w io.Writer) *Encoder {
	return encoding.NewEncoder(w)
}

// NewDecoder returns a Decoder reading from r with the package's
// decoding rules.
func NewDecoder(r io.Reader) *Decoder {
	return decoding.NewDecoder(r)
}

// Diagnose renders data in CBOR diagnostic notation (RFC 8949 §8).
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
