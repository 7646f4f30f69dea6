// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pack

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/litnb/cmd/litnb/cli"
	"github.com/bureau-foundation/litnb/lib/chunk"
	"github.com/bureau-foundation/litnb/lib/config"
	"github.com/bureau-foundation/litnb/lib/notebook"
	"github.com/bureau-foundation/litnb/lib/snapshot"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// sampleStream encodes a notebook long enough for compression to help.
func sampleStream(t *testing.T) []byte {
	t.Helper()
	document := &notebook.Document{
		Blocks: []notebook.Block{
			notebook.Prose("# Snapshot sample\n", "\n", strings.Repeat("Prose that repeats. ", 40)),
			notebook.Code(notebook.TagModule, strings.Repeat("value = compute(value)\n", 30)+"result = value"),
			notebook.Code(notebook.TagTest, "# test\n", "assert result"),
		},
		Metadata: map[string]any{"nbformat": 4},
	}
	var stream bytes.Buffer
	if err := chunk.Write(&stream, document, chunk.Options{}); err != nil {
		t.Fatalf("encoding sample: %v", err)
	}
	return stream.Bytes()
}

func TestPackUnpack(t *testing.T) {
	stream := sampleStream(t)
	for _, compression := range []snapshot.Compression{snapshot.CompressionNone, snapshot.CompressionLZ4, snapshot.CompressionZstd} {
		t.Run(compression.String(), func(t *testing.T) {
			packed, envelope, err := packStream(&cli.Input{Path: "sample.lit.py", Data: stream}, compression, discardLogger())
			if err != nil {
				t.Fatalf("packStream: %v", err)
			}
			if envelope.Compression != compression {
				t.Errorf("compression = %s, want %s", envelope.Compression, compression)
			}
			if envelope.Digest != snapshot.Sum(stream) {
				t.Errorf("digest = %s, want the digest of the stream", envelope.Digest)
			}

			unpacked, _, err := unpackSnapshot(&cli.Input{Data: packed})
			if err != nil {
				t.Fatalf("unpackSnapshot: %v", err)
			}
			if !bytes.Equal(unpacked, stream) {
				t.Error("unpacked stream differs from the packed stream")
			}
		})
	}
}

func TestPackRejectsUndecodableStream(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   error
	}{
		{"not a stream", "print('hello')\n", chunk.ErrNoChunkMarker},
		{"uncommented prose", "\n#### Cell #0 Type: markdown ####\n\nplain\n\n", chunk.ErrMalformedComment},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := packStream(&cli.Input{Data: []byte(test.stream)}, snapshot.CompressionZstd, discardLogger())
			if !errors.Is(err, test.want) {
				t.Fatalf("err = %v, want %v", err, test.want)
			}
			if cli.CategoryOf(err) != cli.CategoryValidation {
				t.Errorf("category = %q, want validation", cli.CategoryOf(err))
			}
		})
	}
}

func TestUnpackRejects(t *testing.T) {
	stream := sampleStream(t)
	packed, _, err := packStream(&cli.Input{Data: stream}, snapshot.CompressionNone, discardLogger())
	if err != nil {
		t.Fatalf("packStream: %v", err)
	}

	// The uncompressed payload holds the stream verbatim, so flipping a
	// byte of prose corrupts the payload without breaking the CBOR.
	tampered := bytes.Clone(packed)
	position := bytes.Index(tampered, []byte("Prose that repeats"))
	if position < 0 {
		t.Fatal("stream text not found in uncompressed snapshot")
	}
	tampered[position] = 'p'

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"tampered payload", tampered, snapshot.ErrDigestMismatch},
		{"not a snapshot", []byte("not a snapshot"), snapshot.ErrCorrupt},
		{"empty", nil, snapshot.ErrCorrupt},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := unpackSnapshot(&cli.Input{Path: "sample.litz", Data: test.data})
			if !errors.Is(err, test.want) {
				t.Fatalf("err = %v, want %v", err, test.want)
			}
			if cli.CategoryOf(err) != cli.CategoryValidation {
				t.Errorf("category = %q, want validation", cli.CategoryOf(err))
			}
		})
	}
}

func TestDiagnoseSnapshot(t *testing.T) {
	packed, envelope, err := packStream(&cli.Input{Data: sampleStream(t)}, snapshot.CompressionLZ4, discardLogger())
	if err != nil {
		t.Fatalf("packStream: %v", err)
	}
	var output bytes.Buffer
	if err := diagnoseSnapshot(&cli.Input{Data: packed}, &output); err != nil {
		t.Fatalf("diagnoseSnapshot: %v", err)
	}
	for _, want := range []string{`"compression": "lz4"`, envelope.Digest.String()} {
		if !strings.Contains(output.String(), want) {
			t.Errorf("diagnostic output missing %q:\n%s", want, output.String())
		}
	}
}

func TestResolveCompression(t *testing.T) {
	cfg := config.Default()
	cfg.Snapshot.Compression = "lz4"

	tests := []struct {
		flag    string
		want    snapshot.Compression
		wantErr bool
	}{
		{"", snapshot.CompressionLZ4, false},
		{"none", snapshot.CompressionNone, false},
		{"zstd", snapshot.CompressionZstd, false},
		{"gzip", 0, true},
	}
	for _, test := range tests {
		got, err := resolveCompression(test.flag, cfg)
		if test.wantErr {
			if cli.CategoryOf(err) != cli.CategoryValidation {
				t.Errorf("resolveCompression(%q): err = %v, want a validation error", test.flag, err)
			}
			continue
		}
		if err != nil || got != test.want {
			t.Errorf("resolveCompression(%q) = (%s, %v), want %s", test.flag, got, err, test.want)
		}
	}
}

func TestSnapshotPath(t *testing.T) {
	cfg := config.Default()
	input := &cli.Input{Path: filepath.Join("work", "analysis.lit.py")}

	got, err := snapshotPath("", input, cfg)
	if err != nil || got != filepath.Join("work", "analysis.lit.litz") {
		t.Errorf("beside input = (%q, %v)", got, err)
	}

	got, err = snapshotPath("out.litz", input, cfg)
	if err != nil || got != "out.litz" {
		t.Errorf("explicit output = (%q, %v)", got, err)
	}

	got, err = snapshotPath("", &cli.Input{}, cfg)
	if err != nil || got != "" {
		t.Errorf("stdin = (%q, %v), want stdout", got, err)
	}

	cfg.Snapshot.Directory = filepath.Join(t.TempDir(), "snapshots")
	got, err = snapshotPath("", input, cfg)
	if err != nil {
		t.Fatalf("snapshotPath: %v", err)
	}
	if want := filepath.Join(cfg.Snapshot.Directory, "analysis.lit.litz"); got != want {
		t.Errorf("configured directory = %q, want %q", got, want)
	}
	if info, err := os.Stat(cfg.Snapshot.Directory); err != nil || !info.IsDir() {
		t.Errorf("snapshot directory was not created: %v", err)
	}
}
