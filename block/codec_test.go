package block_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/cocosip/bindiff/block"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		b    block.Block
	}{
		{"skip zero", block.SkipBlock(0)},
		{"skip mid", block.SkipBlock(4096)},
		{"skip max", block.SkipBlock(0xFFFFFFFF)},
		{"add empty", block.AddBlock(nil)},
		{"add data", block.AddBlock([]byte("hello"))},
		{"remove zero", block.RemoveBlock(0)},
		{"remove mid", block.RemoveBlock(17)},
		{"replace", block.ReplaceBlock(3, []byte("XY"))},
		{"replace same remove_length", block.ReplaceBlock(2, []byte("PQ"))},
		{"replace_same", block.ReplaceSameBlock([]byte("ZZZZ"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := block.EncodeOne(&buf, tt.b); err != nil {
				t.Fatalf("EncodeOne: %v", err)
			}
			got, err := block.DecodeOne(&buf)
			if err != nil {
				t.Fatalf("DecodeOne: %v", err)
			}
			if !got.Equal(tt.b) {
				t.Fatalf("round trip mismatch: got %+v, want %+v", got, tt.b)
			}
		})
	}
}

func TestDecodeOne_EmptyReaderIsEOF(t *testing.T) {
	_, err := block.DecodeOne(bytes.NewReader(nil))
	if !errors.Is(err, io.EOF) {
		t.Fatalf("DecodeOne(empty) = %v, want io.EOF", err)
	}
}

func TestDecodeOne_UnknownTagIsMalformed(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0x00, 0x09}) // tag 9, no such action
	_, err := block.DecodeOne(&buf)
	if !errors.Is(err, block.ErrUnknownAction) {
		t.Fatalf("DecodeOne(bad tag) = %v, want ErrUnknownAction", err)
	}
	if !errors.Is(err, block.ErrMalformedBlock) {
		t.Fatalf("DecodeOne(bad tag) = %v, want ErrMalformedBlock", err)
	}
}

func TestDecodeOne_ShortReadIsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"truncated tag", []byte{0x00}},
		{"truncated length", []byte{0x00, 0x00, 0x00}},
		{"truncated add payload", []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x05, 'h', 'i'}},
		{"truncated replace second length", []byte{0x00, 0x03, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := block.DecodeOne(bytes.NewReader(tt.data))
			if !errors.Is(err, block.ErrMalformedBlock) {
				t.Fatalf("DecodeOne(%s) = %v, want ErrMalformedBlock", tt.name, err)
			}
		})
	}
}

func TestDecodeEncodeDiffByteIdentical(t *testing.T) {
	var original bytes.Buffer
	blocks := []block.Block{
		block.SkipBlock(10),
		block.AddBlock([]byte("abc")),
		block.RemoveBlock(2),
		block.ReplaceBlock(1, []byte("xyz")),
		block.ReplaceSameBlock([]byte("qq")),
	}
	for _, b := range blocks {
		if err := block.EncodeOne(&original, b); err != nil {
			t.Fatalf("EncodeOne: %v", err)
		}
	}

	r := bytes.NewReader(original.Bytes())
	var reencoded bytes.Buffer
	for {
		b, err := block.DecodeOne(r)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("DecodeOne: %v", err)
		}
		if err := block.EncodeOne(&reencoded, b); err != nil {
			t.Fatalf("EncodeOne: %v", err)
		}
	}

	if !bytes.Equal(original.Bytes(), reencoded.Bytes()) {
		t.Fatalf("re-encoded diff differs from original:\noriginal:  % x\nreencoded: % x", original.Bytes(), reencoded.Bytes())
	}
}

func TestReplaceVsReplaceSameWireDistinct(t *testing.T) {
	// Semantically equal (remove_length == length) but must not be
	// byte-identical on the wire.
	replace := block.ReplaceBlock(3, []byte("abc"))
	replaceSame := block.ReplaceSameBlock([]byte("abc"))

	var bufReplace, bufSame bytes.Buffer
	if err := block.EncodeOne(&bufReplace, replace); err != nil {
		t.Fatal(err)
	}
	if err := block.EncodeOne(&bufSame, replaceSame); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(bufReplace.Bytes(), bufSame.Bytes()) {
		t.Fatalf("Replace(3,3,\"abc\") and ReplaceSame(3,\"abc\") encoded identically: % x", bufReplace.Bytes())
	}
}
